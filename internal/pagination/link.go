package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BuildLinkHeader constructs an RFC 8288 Link header with next/prev page
// relations, preserving existing query params. Returns an empty string when
// the current page has no neighbors.
func BuildLinkHeader(baseURL string, query url.Values, page, totalPages, limit int) string {
	var links []string
	if page < totalPages {
		links = append(links, pageLink(baseURL, query, page+1, limit, "next"))
	}
	if page > 1 {
		links = append(links, pageLink(baseURL, query, page-1, limit, "prev"))
	}
	return strings.Join(links, ", ")
}

func pageLink(baseURL string, query url.Values, page, limit int, rel string) string {
	q := cloneValues(query)
	q.Set("page", strconv.Itoa(page))
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), rel)
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return make(url.Values)
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
