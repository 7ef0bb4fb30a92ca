package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/unifind/internal/model"
)

var (
	// ErrNotFound is returned when an action names a record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNotClaimable is returned when claiming a report that is already claimed or resolved.
	ErrNotClaimable = errors.New("report can no longer be claimed")
	// ErrInvalidTransition is returned for a status change that would move backwards.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Memory holds the development backend's reports, claims and accounts. It is
// safe for concurrent use; everything is lost when the process exits.
type Memory struct {
	Now      func() time.Time
	HashCost int

	mu      sync.RWMutex
	reports []model.Report // newest first
	claims  []model.Claim  // pending only, newest first
	users   map[string]*account
}

type account struct {
	user model.User
	hash []byte
}

// NewMemory returns an empty store using the wall clock.
func NewMemory() *Memory {
	return &Memory{
		Now:      time.Now,
		HashCost: bcrypt.DefaultCost,
		users:    map[string]*account{},
	}
}

// Seed adds reports and pending claims in the given order.
func (m *Memory) Seed(reports []model.Report, claims []model.Claim) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, reports...)
	m.claims = append(m.claims, claims...)
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findReport returns the index of the report with id, or -1. Callers hold mu.
func (m *Memory) findReport(id string) int {
	for i := range m.reports {
		if m.reports[i].ID == id {
			return i
		}
	}
	return -1
}
