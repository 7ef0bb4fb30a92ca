package model

import "time"

// Report is a single lost-or-found item record.
type Report struct {
	ID           string    `json:"_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Campus       string    `json:"campus,omitempty"`
	Building     string    `json:"building"`
	LocationText string    `json:"locationText,omitempty"`
	Date         string    `json:"date,omitempty"`
	Time         string    `json:"time,omitempty"`
	Status       string    `json:"status"`
	Reporter     Person    `json:"reporter"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Person identifies a reporter or claimant.
type Person struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Report types.
const (
	ReportTypeLost  = "lost"
	ReportTypeFound = "found"
)

// Report statuses. Open is the feed variant of lost/found.
const (
	StatusLost     = "lost"
	StatusFound    = "found"
	StatusOpen     = "open"
	StatusClaimed  = "claimed"
	StatusResolved = "resolved"
)

// Categories used by the browse view.
var Categories = []string{
	"electronics",
	"documents",
	"accessories",
	"clothing",
	"keys",
	"bags",
	"other",
}

// ReportInput is the body of a report creation request.
type ReportInput struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Campus       string `json:"campus"`
	Building     string `json:"building"`
	LocationText string `json:"locationText"`
	Date         string `json:"date"`
	Time         string `json:"time,omitempty"`
}

// statusRank orders statuses along the only allowed direction of travel.
func statusRank(status string) int {
	switch status {
	case StatusLost, StatusFound, StatusOpen:
		return 1
	case StatusClaimed:
		return 2
	case StatusResolved:
		return 3
	default:
		return 0
	}
}

// CanTransition reports whether a report may move from one status to another.
// Statuses only move forward: lost/found/open, then claimed, then resolved.
func CanTransition(from, to string) bool {
	f, t := statusRank(from), statusRank(to)
	if f == 0 || t == 0 {
		return false
	}
	return t > f
}
