package members

import (
	"testing"

	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
)

func TestFormatDateOfBirth(t *testing.T) {
	tests := []struct {
		dob  string
		want string
	}{
		{"2020-01-01", "Jan 01, 2020"},
		{"1990-05-02", "May 02, 1990"},
		{"1906-12-09", "Dec 09, 1906"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := formatDateOfBirth(tc.dob); got != tc.want {
			t.Errorf("formatDateOfBirth(%q) = %q, want %q", tc.dob, got, tc.want)
		}
	}
}

func TestToRow(t *testing.T) {
	photo := "/members/m-001/photo"
	m := memberssvc.Member{
		ID:          "m-001",
		FirstName:   "ann",
		LastName:    "lee",
		DateOfBirth: "1990-05-02",
		Sex:         memberssvc.SexFemale,
		Status:      memberssvc.StatusPaused,
		PhotoURL:    &photo,
	}

	row := toRow(m)
	if row.FullName != "ann lee" || row.Initials != "AL" {
		t.Errorf("unexpected names: %+v", row)
	}
	if row.Sex != "Female" {
		t.Errorf("unexpected sex label: %s", row.Sex)
	}
	if row.Active {
		t.Error("paused member must not be active")
	}
	if row.PhotoURL == nil || *row.PhotoURL != photo {
		t.Errorf("unexpected photo url: %+v", row.PhotoURL)
	}
}

func TestToRowWithoutPhoto(t *testing.T) {
	row := toRow(memberssvc.Member{ID: "m-002", FirstName: "Bo", Status: memberssvc.StatusActive})
	if row.PhotoURL != nil {
		t.Errorf("expected nil photo url, got %v", *row.PhotoURL)
	}
	if !row.Active {
		t.Error("active member must be active")
	}
	if row.Initials != "B" {
		t.Errorf("unexpected initials: %s", row.Initials)
	}
}
