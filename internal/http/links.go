package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/diazmg/phone-store/internal/service"
)

// PageLinks are ready-to-follow navigation references for a catalog page.
// A side is nil when there is no page in that direction.
type PageLinks struct {
	Prev *string `json:"prevLink"`
	Next *string `json:"nextLink"`
}

// BuildPageLinks rebuilds the request's full query string with only `page`
// overwritten, so limit, sort and filter survive navigation verbatim.
func BuildPageLinks(base string, query url.Values, page *service.ProductPage) PageLinks {
	link := func(target int) *string {
		params := url.Values{}
		for key, values := range query {
			params[key] = append([]string(nil), values...)
		}
		params.Set("page", strconv.Itoa(target))
		s := base + "?" + params.Encode()
		return &s
	}

	var links PageLinks
	if page.HasPrevPage && page.PrevPage != nil {
		links.Prev = link(*page.PrevPage)
	}
	if page.HasNextPage && page.NextPage != nil {
		links.Next = link(*page.NextPage)
	}
	return links
}

// requestBase reconstructs scheme://host/path for the incoming request.
func requestBase(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
