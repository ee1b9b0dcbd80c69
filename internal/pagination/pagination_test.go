package pagination

import (
	"net/url"
	"strings"
	"testing"
)

func TestParamsDefaults(t *testing.T) {
	var p Params
	if got := p.DefaultPage(); got != 1 {
		t.Errorf("expected default page 1, got %d", got)
	}
	if got := p.DefaultLimit(); got != 10 {
		t.Errorf("expected default limit 10, got %d", got)
	}

	p = Params{Page: 3, Limit: 25}
	if got := p.DefaultPage(); got != 3 {
		t.Errorf("expected page 3, got %d", got)
	}
	if got := p.DefaultLimit(); got != 25 {
		t.Errorf("expected limit 25, got %d", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		totalItems int
		pageSize   int
		want       int
	}{
		{25, 10, 3},
		{30, 10, 3},
		{31, 10, 4},
		{1, 10, 1},
		{0, 10, 0},
		{10, 0, 0},
		{-5, 10, 0},
	}
	for _, tc := range tests {
		if got := TotalPages(tc.totalItems, tc.pageSize); got != tc.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tc.totalItems, tc.pageSize, got, tc.want)
		}
	}
}

func TestBuildLinkHeaderMiddlePage(t *testing.T) {
	header := BuildLinkHeader("/v1/members", nil, 2, 3, 10)
	if !strings.Contains(header, `rel="next"`) {
		t.Errorf("expected next link, got %q", header)
	}
	if !strings.Contains(header, `rel="prev"`) {
		t.Errorf("expected prev link, got %q", header)
	}
	if !strings.Contains(header, "page=3") || !strings.Contains(header, "page=1") {
		t.Errorf("expected page=3 and page=1 links, got %q", header)
	}
	if !strings.Contains(header, "limit=10") {
		t.Errorf("expected limit to be preserved, got %q", header)
	}
}

func TestBuildLinkHeaderFirstAndLastPages(t *testing.T) {
	first := BuildLinkHeader("/v1/members", nil, 1, 3, 10)
	if strings.Contains(first, `rel="prev"`) {
		t.Errorf("first page should have no prev link: %q", first)
	}
	if !strings.Contains(first, `rel="next"`) {
		t.Errorf("first page should have a next link: %q", first)
	}

	last := BuildLinkHeader("/v1/members", nil, 3, 3, 10)
	if strings.Contains(last, `rel="next"`) {
		t.Errorf("last page should have no next link: %q", last)
	}

	only := BuildLinkHeader("/v1/members", nil, 1, 1, 10)
	if only != "" {
		t.Errorf("single page should produce no links, got %q", only)
	}
}

func TestBuildLinkHeaderPreservesQuery(t *testing.T) {
	q := url.Values{"status": {"ACTIVE"}}
	header := BuildLinkHeader("/v1/members", q, 1, 2, 10)
	if !strings.Contains(header, "status=ACTIVE") {
		t.Errorf("expected query params to be preserved, got %q", header)
	}
	if len(q["page"]) != 0 {
		t.Errorf("caller's query values should not be mutated: %v", q)
	}
}
