// Package admin holds the administrator's view of reports and pending claims.
package admin

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/erazemk/unifind/internal/model"
)

// Summary is the dashboard overview.
type Summary struct {
	Total         int
	ByStatus      map[string]int
	NewToday      int
	PendingClaims int
}

// Stats summarizes reports and pending claims as of now.
func Stats(reports []model.Report, claims []model.Claim, now time.Time) Summary {
	s := Summary{Total: len(reports), ByStatus: map[string]int{}}

	y, m, d := now.Date()
	for _, r := range reports {
		s.ByStatus[r.Status]++
		if !r.CreatedAt.IsZero() {
			ry, rm, rd := r.CreatedAt.In(now.Location()).Date()
			if ry == y && rm == m && rd == d {
				s.NewToday++
			}
		}
	}
	for _, c := range claims {
		if c.State == "" || c.State == model.ClaimPending {
			s.PendingClaims++
		}
	}
	return s
}

// ClaimsAPI is the part of the client used for triage.
type ClaimsAPI interface {
	ListClaims(ctx context.Context, token string) ([]model.Claim, error)
	ApproveClaim(ctx context.Context, token, claimID string) error
	RejectClaim(ctx context.Context, token, claimID string) error
}

// Triage holds the pending claims list. Approve and Reject return at once;
// the request runs in the background and the list is not changed locally.
type Triage struct {
	// OnResult, if set, is called when a background action finishes.
	OnResult func(action, claimID string, err error)

	api   ClaimsAPI
	token string
	base  context.Context

	mu     sync.Mutex
	claims []model.Claim
	wg     sync.WaitGroup
}

// NewTriage returns a triage view acting with token. Background actions inherit ctx.
func NewTriage(ctx context.Context, api ClaimsAPI, token string) *Triage {
	return &Triage{api: api, token: token, base: ctx}
}

// Load replaces the pending list with the server's.
func (t *Triage) Load(ctx context.Context) error {
	claims, err := t.api.ListClaims(ctx, t.token)
	if err != nil {
		return fmt.Errorf("loading claims: %w", err)
	}
	t.SetClaims(claims)
	return nil
}

// SetClaims replaces the pending list.
func (t *Triage) SetClaims(claims []model.Claim) {
	t.mu.Lock()
	t.claims = slices.Clone(claims)
	t.mu.Unlock()
}

// Pending returns the pending claims.
func (t *Triage) Pending() []model.Claim {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.claims)
}

// Approve approves a claim in the background.
func (t *Triage) Approve(claimID string) {
	t.fire("approve", claimID, t.api.ApproveClaim)
}

// Reject rejects a claim in the background.
func (t *Triage) Reject(claimID string) {
	t.fire("reject", claimID, t.api.RejectClaim)
}

func (t *Triage) fire(action, claimID string, call func(context.Context, string, string) error) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		err := call(t.base, t.token, claimID)
		if err != nil {
			slog.Error("claim action failed", "action", action, "claim", claimID, "error", err)
		} else {
			slog.Info("claim action sent", "action", action, "claim", claimID)
		}
		if t.OnResult != nil {
			t.OnResult(action, claimID, err)
		}
	}()
}

// Wait blocks until every background action has returned.
func (t *Triage) Wait() {
	t.wg.Wait()
}
