package members

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/memberdesk/memberdesk/internal/pagination"
)

// ListInput defines query parameters for listing members.
type ListInput struct {
	pagination.Params
}

// GetInput identifies a single member.
type GetInput struct {
	ID string `path:"id" doc:"Member identifier" example:"m-001"`
}

// CreateBody carries the fields for a new member. Field rules are enforced by
// the member validation layer so failures report per-field reasons.
type CreateBody struct {
	FirstName   string `json:"firstName,omitempty" doc:"Given name" example:"Ann"`
	LastName    string `json:"lastName,omitempty" doc:"Family name" example:"Lee"`
	DateOfBirth string `json:"dateOfBirth,omitempty" doc:"Calendar date, YYYY-MM-DD" example:"1990-05-02"`
	Sex         string `json:"sex,omitempty" doc:"One of male, female, other" example:"female"`
	Status      string `json:"status,omitempty" doc:"One of ACTIVE, PAUSED" example:"ACTIVE"`
}

// CreateInput is the request for creating a member.
type CreateInput struct {
	Body CreateBody
}

// UpdateBody carries a partial member update. Absent fields stay untouched.
type UpdateBody struct {
	FirstName   *string `json:"firstName,omitempty" doc:"Given name"`
	LastName    *string `json:"lastName,omitempty" doc:"Family name"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" doc:"Calendar date, YYYY-MM-DD"`
	Sex         *string `json:"sex,omitempty" doc:"One of male, female, other"`
	Status      *string `json:"status,omitempty" doc:"One of ACTIVE, PAUSED"`
}

// UpdateInput is the request for updating a member.
type UpdateInput struct {
	ID   string `path:"id" doc:"Member identifier"`
	Body UpdateBody
}

// DeleteInput identifies the member to delete.
type DeleteInput struct {
	ID string `path:"id" doc:"Member identifier"`
}

// PhotoFormData is the multipart payload for a photo upload.
type PhotoFormData struct {
	File huma.FormFile `form:"file" required:"true" doc:"Photo file"`
}

// PhotoInput is the request for replacing a member's photo.
type PhotoInput struct {
	ID      string                                  `path:"id" doc:"Member identifier"`
	RawBody huma.MultipartFormFiles[PhotoFormData]
}
