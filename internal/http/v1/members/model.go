package members

import (
	"strings"
	"time"

	memberssvc "github.com/memberdesk/memberdesk/internal/service/members"
)

// dobDisplayLayout renders dates of birth for the roster view.
const dobDisplayLayout = "Jan 02, 2006"

// Row is one roster entry shaped for display: name and initials precomputed,
// the date of birth formatted, and the status collapsed to an active flag.
type Row struct {
	ID          string  `json:"id" doc:"Member identifier"`
	FullName    string  `json:"fullName" doc:"Display name" example:"Ann Lee"`
	Initials    string  `json:"initials" doc:"Upper-cased name initials" example:"AL"`
	PhotoURL    *string `json:"photoUrl" doc:"Photo URL, null when no photo is set"`
	DateOfBirth string  `json:"dateOfBirth" doc:"Formatted date of birth" example:"May 02, 1990"`
	Sex         string  `json:"sex" doc:"Capitalized sex label" example:"Female"`
	Active      bool    `json:"active" doc:"True when the membership is active"`
}

func toRow(m memberssvc.Member) Row {
	return Row{
		ID:          m.ID,
		FullName:    m.FullName(),
		Initials:    m.Initials(),
		PhotoURL:    m.PhotoURL,
		DateOfBirth: formatDateOfBirth(m.DateOfBirth),
		Sex:         capitalize(string(m.Sex)),
		Active:      m.Status == memberssvc.StatusActive,
	}
}

func toRows(members []memberssvc.Member) []Row {
	rows := make([]Row, 0, len(members))
	for _, m := range members {
		rows = append(rows, toRow(m))
	}
	return rows
}

// formatDateOfBirth renders a YYYY-MM-DD value as a calendar date. The value
// is parsed without any time zone so the displayed day always matches the
// stored one. Unparseable values pass through unchanged.
func formatDateOfBirth(dob string) string {
	t, err := time.Parse(time.DateOnly, dob)
	if err != nil {
		return dob
	}
	return t.Format(dobDisplayLayout)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
