package main

import (
	"net/http"
	"strconv"
)

type pagination struct {
	Page    int
	Pages   int
	Total   int64
	PrevURL string
	NextURL string
}

func newPagination(r *http.Request, total int64, urlFor func(page int) string) *pagination {
	pages := int((total + pageSize - 1) / pageSize)
	if pages < 1 {
		pages = 1
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	p := &pagination{
		Page:  page,
		Pages: pages,
		Total: total,
	}
	if page > 1 {
		p.PrevURL = urlFor(page - 1)
	}
	if page < pages {
		p.NextURL = urlFor(page + 1)
	}
	return p
}

func parseOrder(r *http.Request, fallback string) string {
	order := r.URL.Query().Get("order")
	if order != "asc" && order != "desc" {
		order = fallback
	}
	return order
}
