package members

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/memberdesk/memberdesk/internal/pagination"
)

// Service errors
var (
	ErrNotFound  = errors.New("member not found")
	ErrTransport = errors.New("member store request failed")
)

// TransportError carries the HTTP status of a failed store request.
// Status is 0 for network-level failures. It unwraps to ErrTransport
// (or ErrNotFound for single-entity fetch 404s).
type TransportError struct {
	Status int
	cause  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "member store error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("member store error: %v", e.cause)
	}
	return fmt.Sprintf("member store error (status=%d): %v", e.Status, e.cause)
}

// Unwrap enables errors.Is against the sentinel service errors.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Sex is a member's recorded sex.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Status is a member's subscription state.
type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusPaused Status = "PAUSED"
)

// Member is one roster record. ID and the timestamps are server-assigned and
// immutable from this side; DateOfBirth is a pure YYYY-MM-DD calendar date
// with no time component.
type Member struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	DateOfBirth string  `json:"dateOfBirth"`
	Sex         Sex     `json:"sex"`
	Status      Status  `json:"status"`
	PhotoURL    *string `json:"photoUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FullName returns the member's display name.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Initials returns the upper-cased first letters of the member's names.
// An empty name contributes an empty initial.
func (m Member) Initials() string {
	return initial(m.FirstName) + initial(m.LastName)
}

func initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}

// CreateMemberInput is the payload for creating a member. All fields are
// required and validated before any network call.
type CreateMemberInput struct {
	FirstName   string `json:"firstName"   validate:"notblank"`
	LastName    string `json:"lastName"    validate:"notblank"`
	DateOfBirth string `json:"dateOfBirth" validate:"dateonly"`
	Sex         Sex    `json:"sex"         validate:"oneof=male female other"`
	Status      Status `json:"status"      validate:"oneof=ACTIVE PAUSED"`
}

// UpdateMemberInput is a partial payload for updating a member. Every field
// is optional, but at least one must be supplied.
type UpdateMemberInput struct {
	FirstName   *string `json:"firstName,omitempty"   validate:"omitnil,notblank"`
	LastName    *string `json:"lastName,omitempty"    validate:"omitnil,notblank"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitnil,dateonly"`
	Sex         *Sex    `json:"sex,omitempty"         validate:"omitnil,oneof=male female other"`
	Status      *Status `json:"status,omitempty"      validate:"omitnil,oneof=ACTIVE PAUSED"`
}

// IsEmpty reports whether no field is supplied at all.
func (in UpdateMemberInput) IsEmpty() bool {
	return in.FirstName == nil &&
		in.LastName == nil &&
		in.DateOfBirth == nil &&
		in.Sex == nil &&
		in.Status == nil
}

// Service defines the member store operations. Implementations issue exactly
// one request per call: no retries, no caching, no batching.
type Service interface {
	ListMembers(ctx context.Context, page, limit int) (*pagination.Page[Member], error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error)
	UpdateMember(ctx context.Context, id string, input UpdateMemberInput) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, photo io.Reader, mimeType string) error
}
