package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	err := godotenv.Load()
	if os.IsNotExist(err) {
		log.Printf("no .env file found, skipping")
	} else if err != nil {
		log.Fatalf("failed loading .env file: %s", err)
	}

	app := cli.NewApp()
	app.Name = "song-server"
	app.Usage = "Song catalog server and storage."
	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "port to run server on",
			EnvVars: []string{"SONGS_PORT"},
		},
		&cli.StringFlag{
			Name:     "data-directory",
			Usage:    "data directory where the catalog database is stored",
			EnvVars:  []string{"SONGS_DATA_DIR"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "base-url",
			Value:   "http://localhost:8080",
			Usage:   "base url where the server is reachable",
			EnvVars: []string{"SONGS_BASE_URL"},
		},
		&cli.StringFlag{
			Name:     "username",
			Usage:    "login username",
			EnvVars:  []string{"SONGS_USERNAME"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "bcrypt hash of the login password",
			EnvVars:  []string{"SONGS_PASSWORD"},
			Required: true,
		},
		&cli.StringFlag{
			Name:     "jwt-secret",
			Usage:    "secret used to sign session tokens",
			EnvVars:  []string{"SONGS_JWT_SECRET"},
			Required: true,
		},
		&cli.StringFlag{
			Name:    "auth-token",
			Usage:   "http api endpoint authentication token",
			EnvVars: []string{"SONGS_AUTH_TOKEN"},
		},
	}
	app.Action = func(ctx *cli.Context) error {
		handler, err := newServer(ctx.Context, &serverOptions{
			dataDir:  ctx.String("data-directory"),
			baseURL:  ctx.String("base-url"),
			username: ctx.String("username"),
			password: ctx.String("password"),
			jwtKey:   ctx.String("jwt-secret"),
			apiToken: ctx.String("auth-token"),
		})
		if err != nil {
			return err
		}

		// Start HTTP handler.
		quit := make(chan os.Signal, 2)
		var wg sync.WaitGroup
		wg.Add(1)

		server := &http.Server{Addr: ":" + strconv.Itoa(ctx.Int("port")), Handler: handler}

		go func() {
			defer wg.Done()

			slog.Info("serving", "address", server.Addr)

			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "failed to start server: %s\n", err)
				quit <- os.Interrupt
			}
		}()

		signal.Notify(
			quit,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGHUP,
		)
		<-quit

		slog.Info("Server shutting down...")

		go server.Close()

		wg.Wait()
		return nil
	}

	err = app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
