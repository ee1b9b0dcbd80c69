package pagination

// Params embeds into Huma input structs for page-number pagination.
type Params struct {
	Page  int `query:"page"  doc:"1-based page number"     default:"1"  minimum:"1"`
	Limit int `query:"limit" doc:"Maximum items per page" default:"10" minimum:"1" maximum:"100"`
}

// DefaultPage returns the page, defaulting to 1 if unset.
func (p Params) DefaultPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// DefaultLimit returns the limit, defaulting to 10 if unset.
func (p Params) DefaultLimit() int {
	if p.Limit <= 0 {
		return 10
	}
	return p.Limit
}

// Page mirrors the member store's pagination envelope. The store is the
// source of truth for Page and TotalPages: callers render whatever page the
// store reports, not necessarily the page they last requested.
type Page[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// TotalPages derives a page count as ceil(totalItems/pageSize).
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
