package store

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/erazemk/unifind/internal/model"
)

// CreateClaim files a pending claim by claimant on a report.
func (m *Memory) CreateClaim(_ context.Context, reportID string, claimant model.Person, note string) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.findReport(reportID)
	if i < 0 {
		return nil, fmt.Errorf("report %s: %w", reportID, ErrNotFound)
	}
	r := m.reports[i]
	if !model.CanTransition(r.Status, model.StatusClaimed) {
		return nil, ErrNotClaimable
	}

	c := model.Claim{
		ID:               uuid.NewString(),
		ItemID:           r.ID,
		ItemTitle:        r.Title,
		Claimant:         claimant,
		VerificationNote: note,
		SubmittedAt:      m.now(),
		State:            model.ClaimPending,
	}
	m.claims = slices.Insert(m.claims, 0, c)
	return &c, nil
}

// PendingClaims returns the claims awaiting verification, newest first.
func (m *Memory) PendingClaims(_ context.Context) ([]model.Claim, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.claims), nil
}

// ResolveClaim removes a claim from the pending list. Approving it also marks
// the report as claimed when it can still move there.
func (m *Memory) ResolveClaim(_ context.Context, id string, approve bool) (*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.claims, func(c model.Claim) bool { return c.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("claim %s: %w", id, ErrNotFound)
	}
	c := m.claims[i]
	m.claims = slices.Delete(m.claims, i, i+1)

	if approve {
		if j := m.findReport(c.ItemID); j >= 0 && model.CanTransition(m.reports[j].Status, model.StatusClaimed) {
			m.reports[j].Status = model.StatusClaimed
		}
	}
	return &c, nil
}
