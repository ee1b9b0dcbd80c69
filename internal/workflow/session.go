// Package workflow drives the member form lifecycle: editing, validating,
// submitting, and the two-step delete confirmation. A Session owns one form's
// state; handlers construct one per request and run exactly one submission
// through it.
package workflow

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/memberdesk/memberdesk/internal/cache"
	"github.com/memberdesk/memberdesk/internal/service/members"
)

// Workflow errors
var (
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrCreateMode     = errors.New("operation requires an existing member")
	ErrDeleteNotArmed = errors.New("delete has not been requested")
	ErrStaleSession   = errors.New("session was reseeded during submission")
)

// Mode distinguishes a creation form from an edit form.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State is the form lifecycle phase.
type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Values holds the editable form fields.
type Values struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Sex         members.Sex
	Status      members.Status
}

// ValuesFromMember seeds form values from an existing record.
func ValuesFromMember(m members.Member) Values {
	return Values{
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		DateOfBirth: m.DateOfBirth,
		Sex:         m.Sex,
		Status:      m.Status,
	}
}

// Result reports the outcome of a successful submission or delete.
type Result struct {
	// Member is the record returned by the store. Nil for deletes.
	Member *members.Member
	// Invalidated lists the cache descriptors dropped by this mutation.
	Invalidated []cache.Key
	// Navigate signals that the form is done and the caller should leave it.
	Navigate bool
}

// Session is a concurrency-safe form state machine bound to one member (edit
// mode) or to a new record (create mode). All mutations funnel through the
// member store; the session never writes the cache, only invalidates it.
type Session struct {
	svc   members.Service
	cache *cache.Store

	mu       sync.Mutex
	mode     Mode
	state    State
	memberID string
	baseline Values
	values   Values
	armed    bool
	epoch    int
}

// NewCreate starts a creation session with the form defaults.
func NewCreate(svc members.Service, store *cache.Store) *Session {
	defaults := Values{Sex: members.SexMale, Status: members.StatusActive}
	return &Session{
		svc:      svc,
		cache:    store,
		mode:     ModeCreate,
		state:    StateEditing,
		baseline: defaults,
		values:   defaults,
	}
}

// NewEdit starts an edit session seeded from an existing member.
func NewEdit(svc members.Service, store *cache.Store, member members.Member) *Session {
	vals := ValuesFromMember(member)
	return &Session{
		svc:      svc,
		cache:    store,
		mode:     ModeEdit,
		state:    StateEditing,
		memberID: member.ID,
		baseline: vals,
		values:   vals,
	}
}

// Seed replaces the baseline with a freshly fetched record and resets the
// form. Any submission still in flight when Seed is called is discarded on
// return rather than applied over the newer data.
func (s *Session) Seed(member members.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vals := ValuesFromMember(member)
	s.memberID = member.ID
	s.baseline = vals
	s.values = vals
	s.state = StateEditing
	s.armed = false
	s.epoch++
}

// Mode returns the session mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Values returns the current form values.
func (s *Session) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// SetValues replaces the form values. Editing after a failed or finished
// submission returns the session to the editing phase.
func (s *Session) SetValues(v Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = v
	if s.state != StateSubmitting {
		s.state = StateEditing
	}
}

// Dirty reports whether the values differ from the baseline.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values != s.baseline
}

// CanSubmit reports whether a submission would be accepted: the form must be
// dirty, valid, and not already submitted or submitting.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateSubmitting || s.state == StateSucceeded {
		return false
	}
	if s.values == s.baseline {
		return false
	}
	if s.mode == ModeCreate {
		return members.ValidateCreate(s.createInputLocked()) == nil
	}
	return members.ValidateUpdate(s.changedFieldsLocked()) == nil
}

func (s *Session) createInputLocked() members.CreateMemberInput {
	return members.CreateMemberInput{
		FirstName:   s.values.FirstName,
		LastName:    s.values.LastName,
		DateOfBirth: s.values.DateOfBirth,
		Sex:         s.values.Sex,
		Status:      s.values.Status,
	}
}

// changedFieldsLocked builds the partial update payload from the fields that
// differ from the baseline. An unchanged form yields an empty payload, which
// validation rejects as an empty update.
func (s *Session) changedFieldsLocked() members.UpdateMemberInput {
	var in members.UpdateMemberInput
	if s.values.FirstName != s.baseline.FirstName {
		v := s.values.FirstName
		in.FirstName = &v
	}
	if s.values.LastName != s.baseline.LastName {
		v := s.values.LastName
		in.LastName = &v
	}
	if s.values.DateOfBirth != s.baseline.DateOfBirth {
		v := s.values.DateOfBirth
		in.DateOfBirth = &v
	}
	if s.values.Sex != s.baseline.Sex {
		v := s.values.Sex
		in.Sex = &v
	}
	if s.values.Status != s.baseline.Status {
		v := s.values.Status
		in.Status = &v
	}
	return in
}

// Submit validates the form and sends exactly one store request. A second
// Submit while one is in flight fails with ErrSubmitInFlight instead of
// issuing a duplicate request. Validation failures return the session to
// editing; store failures leave it in the failed phase with the values
// intact, so the same form can be resubmitted.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.state = StateValidating

	mode := s.mode
	id := s.memberID
	var createInput members.CreateMemberInput
	var updateInput members.UpdateMemberInput
	var err error
	if mode == ModeCreate {
		createInput = s.createInputLocked()
		err = members.ValidateCreate(createInput)
	} else {
		updateInput = s.changedFieldsLocked()
		err = members.ValidateUpdate(updateInput)
	}
	if err != nil {
		s.state = StateEditing
		s.mu.Unlock()
		return nil, err
	}

	s.state = StateSubmitting
	epoch := s.epoch
	s.mu.Unlock()

	var member *members.Member
	if mode == ModeCreate {
		member, err = s.svc.CreateMember(ctx, createInput)
	} else {
		member, err = s.svc.UpdateMember(ctx, id, updateInput)
	}

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return nil, ErrStaleSession
	}
	if err != nil {
		s.state = StateFailed
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateSucceeded
	s.mu.Unlock()

	keys := []cache.Key{cache.MemberListKey()}
	if mode == ModeEdit {
		keys = []cache.Key{cache.MemberKey(id), cache.MemberListKey()}
	}
	if s.cache != nil {
		s.cache.Invalidate(keys...)
	}
	return &Result{Member: member, Invalidated: keys, Navigate: true}, nil
}

// RequestDelete arms the delete confirmation. Only an edit session can delete.
func (s *Session) RequestDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeEdit {
		return ErrCreateMode
	}
	s.armed = true
	return nil
}

// CancelDelete disarms a pending delete request.
func (s *Session) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.armed = false
}

// DeleteArmed reports whether a delete has been requested and not cancelled.
func (s *Session) DeleteArmed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed
}

// ConfirmDelete performs the armed delete. It fails with ErrDeleteNotArmed
// unless RequestDelete ran first, so a single call can never destroy a
// record. A failed delete disarms the session; the caller must re-arm.
func (s *Session) ConfirmDelete(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	if s.mode != ModeEdit {
		s.mu.Unlock()
		return nil, ErrCreateMode
	}
	if !s.armed {
		s.mu.Unlock()
		return nil, ErrDeleteNotArmed
	}
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.state = StateSubmitting
	s.armed = false
	id := s.memberID
	s.mu.Unlock()

	err := s.svc.DeleteMember(ctx, id)

	s.mu.Lock()
	if err != nil {
		s.state = StateFailed
		s.mu.Unlock()
		return nil, err
	}
	s.state = StateSucceeded
	s.mu.Unlock()

	keys := []cache.Key{cache.MemberKey(id), cache.MemberListKey()}
	if s.cache != nil {
		s.cache.Invalidate(keys...)
	}
	return &Result{Invalidated: keys, Navigate: true}, nil
}

// UploadPhoto sends the photo to the store and, on success, invalidates the
// member's cached record. The list view renders photos from the member
// record, so the list cache is left alone. A failed upload invalidates
// nothing.
func (s *Session) UploadPhoto(ctx context.Context, photo io.Reader, mimeType string) error {
	s.mu.Lock()
	if s.mode != ModeEdit {
		s.mu.Unlock()
		return ErrCreateMode
	}
	id := s.memberID
	s.mu.Unlock()

	if err := s.svc.UploadPhoto(ctx, id, photo, mimeType); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(cache.MemberKey(id))
	}
	return nil
}
