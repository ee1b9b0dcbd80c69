package members

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/memberdesk/memberdesk/internal/pagination"
)

// mockPhotoLimit mirrors the remote store's 3 MB photo cap.
const mockPhotoLimit = 3 << 20

// Mock implements Service in memory for unit tests. It records the name of
// every call so tests can assert exactly how many requests an operation
// issued, and can be forced to fail via Err.
type Mock struct {
	mu      sync.Mutex
	members map[string]Member
	order   []string
	nextID  int

	// Err, when set, is returned by every operation.
	Err error

	calls []string
}

// NewMock creates a mock store seeded with the given members.
func NewMock(seed ...Member) *Mock {
	m := &Mock{members: make(map[string]Member)}
	for _, member := range seed {
		m.members[member.ID] = member
		m.order = append(m.order, member.ID)
		m.nextID++
	}
	return m
}

// Calls returns the recorded operation names in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how many times the named operation was invoked.
func (m *Mock) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c == name {
			count++
		}
	}
	return count
}

func (m *Mock) record(name string) {
	m.calls = append(m.calls, name)
}

func (m *Mock) ListMembers(_ context.Context, page, limit int) (*pagination.Page[Member], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("list")
	if m.Err != nil {
		return nil, m.Err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	total := len(m.order)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	data := make([]Member, 0, end-start)
	for _, id := range m.order[start:end] {
		data = append(data, m.members[id])
	}
	return &pagination.Page[Member]{
		Data:       data,
		Page:       page,
		PageSize:   limit,
		TotalItems: total,
		TotalPages: pagination.TotalPages(total, limit),
	}, nil
}

func (m *Mock) GetMember(_ context.Context, id string) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("get")
	if m.Err != nil {
		return nil, m.Err
	}
	member, ok := m.members[id]
	if !ok {
		return nil, &TransportError{Status: http.StatusNotFound, cause: ErrNotFound}
	}
	return &member, nil
}

func (m *Mock) CreateMember(_ context.Context, input CreateMemberInput) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("create")
	if m.Err != nil {
		return nil, m.Err
	}

	m.nextID++
	member := Member{
		ID:          fmt.Sprintf("m-%03d", m.nextID),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Sex:         input.Sex,
		Status:      input.Status,
		CreatedAt:   "2024-01-01T00:00:00Z",
		UpdatedAt:   "2024-01-01T00:00:00Z",
	}
	m.members[member.ID] = member
	m.order = append(m.order, member.ID)
	return &member, nil
}

func (m *Mock) UpdateMember(_ context.Context, id string, input UpdateMemberInput) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("update")
	if m.Err != nil {
		return nil, m.Err
	}

	member, ok := m.members[id]
	if !ok {
		return nil, &TransportError{Status: http.StatusNotFound, cause: ErrTransport}
	}
	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.DateOfBirth != nil {
		member.DateOfBirth = *input.DateOfBirth
	}
	if input.Sex != nil {
		member.Sex = *input.Sex
	}
	if input.Status != nil {
		member.Status = *input.Status
	}
	member.UpdatedAt = "2024-01-02T00:00:00Z"
	m.members[id] = member
	return &member, nil
}

func (m *Mock) DeleteMember(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete")
	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.members[id]; !ok {
		return &TransportError{Status: http.StatusNotFound, cause: ErrTransport}
	}
	delete(m.members, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Mock) UploadPhoto(_ context.Context, id string, photo io.Reader, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("uploadPhoto")
	if m.Err != nil {
		return m.Err
	}

	member, ok := m.members[id]
	if !ok {
		return &TransportError{Status: http.StatusNotFound, cause: ErrTransport}
	}
	data, err := io.ReadAll(photo)
	if err != nil {
		return &TransportError{cause: fmt.Errorf("%w: %v", ErrTransport, err)}
	}
	if len(data) > mockPhotoLimit {
		return &TransportError{Status: http.StatusRequestEntityTooLarge, cause: ErrTransport}
	}
	photoURL := "/members/" + id + "/photo"
	member.PhotoURL = &photoURL
	member.UpdatedAt = "2024-01-02T00:00:00Z"
	m.members[id] = member
	return nil
}

// Compile-time interface check
var _ Service = (*Mock)(nil)
