// Package schema holds the declarative validation rules for every form the
// client submits. Validation is synchronous and never touches the network.
package schema

import (
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// err returns fe as an error, or nil when no field failed.
func (fe FieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// LatestZone is the timezone whose calendar day is furthest ahead. A report
// dated today anywhere is not in the future there.
var LatestZone = time.FixedZone("UTC+14", 14*60*60)

// FilterDates checks that the from and to bounds of f, when set, are
// YYYY-MM-DD dates.
func FilterDates(f query.Filters) error {
	fe := FieldErrors{}
	for _, k := range []query.Key{query.KeyFrom, query.KeyTo} {
		if v, ok := f.Get(k); ok {
			if _, err := time.Parse(DateLayout, v); err != nil {
				fe[string(k)] = "Invalid " + string(k) + " date, expected YYYY-MM-DD"
			}
		}
	}
	return fe.err()
}

// emailPattern accepts local@domain.tld. Leading dots and ".." in the local
// part are rejected separately since RE2 has no lookahead.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// ValidEmail reports whether s is a well-formed email address.
func ValidEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

func minLen(fe FieldErrors, field, value string, n int, msg string) {
	if utf8.RuneCountInString(value) < n {
		fe[field] = msg
	}
}

// Login validates a login attempt.
func Login(in model.LoginInput) error {
	fe := FieldErrors{}
	if !ValidEmail(in.Email) {
		fe["email"] = "Please enter a valid email address."
	}
	minLen(fe, "password", in.Password, 1, "Password is required.")
	return fe.err()
}

// Registration validates an account creation attempt.
func Registration(in model.RegisterInput) error {
	fe := FieldErrors{}
	minLen(fe, "name", in.Name, 2, "Name must be at least 2 characters.")
	switch {
	case !ValidEmail(in.Email):
		fe["email"] = "Please enter a valid email address."
	case !strings.HasSuffix(in.Email, ".edu"):
		fe["email"] = "Please use a college email (.edu)"
	}
	minLen(fe, "password", in.Password, 8, "Password must be at least 8 characters.")
	if !model.ValidRole(in.Role) {
		fe["role"] = "Please select a role."
	}
	return fe.err()
}

// Report validates a lost/found report. The date may not lie after the
// calendar day of now.
func Report(in model.ReportInput, now time.Time) error {
	fe := FieldErrors{}
	if in.Type != model.ReportTypeLost && in.Type != model.ReportTypeFound {
		fe["type"] = "Choose whether the item was lost or found."
	}
	minLen(fe, "title", in.Title, 5, "Title must be at least 5 characters.")
	minLen(fe, "description", in.Description, 20, "Description must be at least 20 characters.")
	minLen(fe, "category", in.Category, 2, "Please select a category.")
	minLen(fe, "campus", in.Campus, 2, "Please select a campus.")
	minLen(fe, "building", in.Building, 2, "Please select a building.")
	minLen(fe, "locationText", in.LocationText, 5, "Describe the location in at least 5 characters.")

	if in.Date == "" {
		fe["date"] = "Date is required."
	} else if d, err := time.ParseInLocation(DateLayout, in.Date, now.Location()); err != nil {
		fe["date"] = "Date must be in YYYY-MM-DD format."
	} else if d.After(startOfDay(now)) {
		fe["date"] = "Date cannot be in the future."
	}

	if in.Time != "" {
		if _, err := time.Parse(TimeLayout, in.Time); err != nil {
			fe["time"] = "Time must be in HH:MM format."
		}
	}
	return fe.err()
}

// Claim validates an ownership claim.
func Claim(in model.ClaimInput) error {
	fe := FieldErrors{}
	minLen(fe, "verificationNote", strings.TrimSpace(in.VerificationNote), 10,
		"Describe how you can prove ownership in at least 10 characters.")
	return fe.err()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today formats the calendar day of now the way report dates are stored.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
