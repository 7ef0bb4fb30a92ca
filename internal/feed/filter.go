package feed

import (
	"context"
	"strings"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
	"github.com/erazemk/unifind/internal/schema"
)

// Filter returns the items matching every present field of f, in source
// order. An empty result is a valid outcome.
func Filter(items []model.Report, f query.Filters) []model.Report {
	out := make([]model.Report, 0, len(items))
	for _, it := range items {
		if Match(it, f) {
			out = append(out, it)
		}
	}
	return out
}

// Match reports whether r satisfies all present fields of f. Enumerated
// fields match exactly, dates inclusively, and free text case-insensitively
// against title and description. Unknown keys are ignored.
func Match(r model.Report, f query.Filters) bool {
	for k, v := range f {
		var ok bool
		switch k {
		case query.KeyType:
			ok = r.Type == v
		case query.KeyStatus:
			ok = r.Status == v
		case query.KeyCategory:
			ok = r.Category == v
		case query.KeyCampus:
			ok = r.Campus == v
		case query.KeyBuilding:
			ok = r.Building == v
		case query.KeyFrom:
			d := reportDate(r)
			ok = d != "" && d >= v
		case query.KeyTo:
			d := reportDate(r)
			ok = d != "" && d <= v
		case query.KeyQuery:
			ok = containsFold(r.Title, v) || containsFold(r.Description, v)
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	return true
}

// reportDate is the YYYY-MM-DD day a report refers to. Feed-variant reports
// carry no date and fall back to their creation day.
func reportDate(r model.Report) string {
	if r.Date != "" {
		return r.Date
	}
	if !r.CreatedAt.IsZero() {
		return r.CreatedAt.UTC().Format(schema.DateLayout)
	}
	return ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Local serves filtered results from an in-memory item set.
type Local struct {
	Items []model.Report
}

// ListReports implements Fetcher. Malformed date bounds are rejected the
// way the server rejects them.
func (l Local) ListReports(_ context.Context, f query.Filters) ([]model.Report, error) {
	if err := schema.FilterDates(f); err != nil {
		return nil, err
	}
	return Filter(l.Items, f), nil
}
