// Package query holds the active filter and search parameters of the reports
// feed.
package query

import (
	"net/url"
	"strings"
	"sync"
)

// Key names a filter field. Its value is also the query-string parameter.
type Key string

// Filter keys.
const (
	KeyType     Key = "type"
	KeyStatus   Key = "status"
	KeyCategory Key = "category"
	KeyCampus   Key = "campus"
	KeyBuilding Key = "building"
	KeyFrom     Key = "from"
	KeyTo       Key = "to"
	KeyQuery    Key = "q"
)

// Keys lists every filter key in display order.
var Keys = []Key{KeyType, KeyStatus, KeyCategory, KeyCampus, KeyBuilding, KeyFrom, KeyTo, KeyQuery}

// All is the UI sentinel for "no constraint". It is never stored.
const All = "all"

// Filters maps present filter keys to their values. A missing key means no
// constraint on that field.
type Filters map[Key]string

// Get returns the value for k and whether it is present.
func (f Filters) Get(k Key) (string, bool) {
	v, ok := f[k]
	return v, ok
}

// Clone returns an independent copy of f.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Values converts present fields to URL values.
func (f Filters) Values() url.Values {
	vals := url.Values{}
	for k, v := range f {
		vals.Set(string(k), v)
	}
	return vals
}

// Encode returns the query string for f with keys sorted. Equal filter
// mappings always encode identically.
func (f Filters) Encode() string {
	return f.Values().Encode()
}

// Equal reports whether f and other hold the same present fields.
func (f Filters) Equal(other Filters) bool {
	if len(f) != len(other) {
		return false
	}
	for k, v := range f {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// normalize maps UI input to a stored value. Empty, whitespace-only and the
// "all" sentinel all mean absent.
func normalize(value string) (string, bool) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, All) {
		return "", false
	}
	return v, true
}

// State is the query state controller. The zero value is not usable; call New.
type State struct {
	mu     sync.Mutex
	active Filters
	staged string
}

// New returns a controller whose effective filters start as initial.
// Sentinel values in initial are dropped.
func New(initial Filters) *State {
	s := &State{active: Filters{}}
	for k, v := range initial {
		if nv, ok := normalize(v); ok {
			s.active[k] = nv
		}
	}
	if q, ok := s.active[KeyQuery]; ok {
		s.staged = q
	}
	return s
}

// SetFilter sets or clears a single field and reports whether the effective
// filters changed. Setting KeyQuery also replaces the staged search text.
func (s *State) SetFilter(k Key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k == KeyQuery {
		s.staged, _ = normalize(value)
	}
	return s.set(k, value)
}

func (s *State) set(k Key, value string) bool {
	old, had := s.active[k]
	v, ok := normalize(value)
	if !ok {
		delete(s.active, k)
		return had
	}
	s.active[k] = v
	return !had || old != v
}

// SetSearchText stages search text without touching the effective filters.
func (s *State) SetSearchText(value string) {
	s.mu.Lock()
	s.staged = value
	s.mu.Unlock()
}

// SearchText returns the staged search text.
func (s *State) SearchText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.staged
}

// CommitSearch merges the staged search text into the effective filters and
// reports whether they changed.
func (s *State) CommitSearch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, had := s.active[KeyQuery]
	v := strings.TrimSpace(s.staged)
	if v == "" {
		delete(s.active, KeyQuery)
		return had
	}
	s.active[KeyQuery] = v
	return !had || old != v
}

// ResetAll clears every field, staged search text included, and reports
// whether the effective filters changed.
func (s *State) ResetAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := len(s.active) > 0
	s.active = Filters{}
	s.staged = ""
	return changed
}

// Effective returns a copy of the filters that requests should use.
func (s *State) Effective() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}
