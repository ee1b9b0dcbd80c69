package members

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func seedMembers(n int) []Member {
	members := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		m := testMember()
		m.ID = string(rune('a'+i)) + "-id"
		members = append(members, m)
	}
	return members
}

func TestMockListPaginates(t *testing.T) {
	mock := NewMock(seedMembers(25)...)

	page, err := mock.ListMembers(context.Background(), 3, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 5 {
		t.Errorf("expected 5 members on last page, got %d", len(page.Data))
	}
	if page.TotalItems != 25 || page.TotalPages != 3 {
		t.Errorf("unexpected metadata: %+v", page)
	}
}

func TestMockCreateAssignsIDs(t *testing.T) {
	mock := NewMock()

	input := CreateMemberInput{FirstName: "Ann", LastName: "Lee", DateOfBirth: "1990-05-02", Sex: SexFemale, Status: StatusActive}
	m, err := mock.CreateMember(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != "m-001" {
		t.Errorf("unexpected id: %s", m.ID)
	}

	m2, err := mock.CreateMember(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m2.ID != "m-002" {
		t.Errorf("unexpected second id: %s", m2.ID)
	}
}

func TestMockUpdateMergesSuppliedFields(t *testing.T) {
	seed := testMember()
	mock := NewMock(seed)

	name := "Grace"
	status := StatusPaused
	updated, err := mock.UpdateMember(context.Background(), seed.ID, UpdateMemberInput{FirstName: &name, Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Grace" || updated.Status != StatusPaused {
		t.Errorf("supplied fields not applied: %+v", updated)
	}
	if updated.LastName != seed.LastName || updated.DateOfBirth != seed.DateOfBirth {
		t.Errorf("unsupplied fields changed: %+v", updated)
	}
}

func TestMockDeleteRemovesMember(t *testing.T) {
	seed := testMember()
	mock := NewMock(seed)

	if err := mock.DeleteMember(context.Background(), seed.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mock.GetMember(context.Background(), seed.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMockUploadPhotoSizeLimit(t *testing.T) {
	seed := testMember()
	mock := NewMock(seed)

	big := bytes.Repeat([]byte("x"), mockPhotoLimit+1)
	err := mock.UploadPhoto(context.Background(), seed.ID, bytes.NewReader(big), "image/png")
	var terr *TransportError
	if !errors.As(err, &terr) || terr.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %v", err)
	}

	if err := mock.UploadPhoto(context.Background(), seed.ID, strings.NewReader("small"), "image/png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := mock.GetMember(context.Background(), seed.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PhotoURL == nil || *m.PhotoURL != "/members/"+seed.ID+"/photo" {
		t.Errorf("photo url not set: %+v", m)
	}
}

func TestMockErrShortCircuits(t *testing.T) {
	mock := NewMock(testMember())
	mock.Err = errors.New("store down")

	if _, err := mock.ListMembers(context.Background(), 1, 10); err == nil {
		t.Error("expected list error")
	}
	if _, err := mock.GetMember(context.Background(), "m-001"); err == nil {
		t.Error("expected get error")
	}
	if err := mock.DeleteMember(context.Background(), "m-001"); err == nil {
		t.Error("expected delete error")
	}
}

func TestMockRecordsCalls(t *testing.T) {
	mock := NewMock(testMember())

	_, _ = mock.GetMember(context.Background(), "m-001")
	_, _ = mock.ListMembers(context.Background(), 1, 10)
	_, _ = mock.GetMember(context.Background(), "m-001")

	if got := mock.CallCount("get"); got != 2 {
		t.Errorf("expected 2 get calls, got %d", got)
	}
	want := []string{"get", "list", "get"}
	calls := mock.Calls()
	if len(calls) != len(want) {
		t.Fatalf("unexpected calls: %v", calls)
	}
	for i, name := range want {
		if calls[i] != name {
			t.Fatalf("unexpected calls: %v", calls)
		}
	}
}
