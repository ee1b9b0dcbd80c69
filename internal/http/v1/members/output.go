package members

import (
	"github.com/memberdesk/memberdesk/internal/api"
	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
)

// ListData is the response body for the roster view: one page of display rows
// plus the store's pagination metadata.
type ListData struct {
	Data       []Row `json:"data" doc:"Roster rows for this page"`
	Page       int   `json:"page" doc:"Current page number" example:"1"`
	PageSize   int   `json:"pageSize" doc:"Rows per page" example:"10"`
	TotalItems int   `json:"totalItems" doc:"Total members in the store" example:"25"`
	TotalPages int   `json:"totalPages" doc:"Total pages at this page size" example:"3"`
}

// ListOutput is the roster response with pagination Link header.
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body api.Envelope[ListData]
}

// MemberOutput wraps a single member record.
type MemberOutput struct {
	Body api.Envelope[memberssvc.Member]
}

// CreateOutput wraps a newly created member record.
type CreateOutput struct {
	Location string `header:"Location" doc:"URL of the created member"`
	Body     api.Envelope[memberssvc.Member]
}
