package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/erazemk/unifind/internal/feed"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
)

// ListReports returns the reports matching f, newest first.
func (m *Memory) ListReports(_ context.Context, f query.Filters) ([]model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return feed.Filter(m.reports, f), nil
}

// GetReport returns a report by ID, or nil if there is none.
func (m *Memory) GetReport(_ context.Context, id string) (*model.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.findReport(id)
	if i < 0 {
		return nil, nil
	}
	r := m.reports[i]
	return &r, nil
}

// CreateReport stores a new report filed by reporter. Its status follows its type.
func (m *Memory) CreateReport(_ context.Context, in model.ReportInput, reporter model.Person) (*model.Report, error) {
	status := model.StatusLost
	if in.Type == model.ReportTypeFound {
		status = model.StatusFound
	}

	r := model.Report{
		ID:           uuid.NewString(),
		Type:         in.Type,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		Campus:       in.Campus,
		Building:     in.Building,
		LocationText: in.LocationText,
		Date:         in.Date,
		Time:         in.Time,
		Status:       status,
		Reporter:     reporter,
		CreatedAt:    m.now(),
	}

	m.mu.Lock()
	m.reports = slices.Insert(m.reports, 0, r)
	m.mu.Unlock()
	return &r, nil
}

// SetReportStatus moves a report forward to status.
func (m *Memory) SetReportStatus(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setStatusLocked(id, status)
}

func (m *Memory) setStatusLocked(id, status string) error {
	i := m.findReport(id)
	if i < 0 {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if !model.CanTransition(m.reports[i].Status, status) {
		return fmt.Errorf("report %s from %s to %s: %w", id, m.reports[i].Status, status, ErrInvalidTransition)
	}
	m.reports[i].Status = status
	return nil
}
