package sample

import (
	"testing"

	"github.com/erazemk/unifind/internal/model"
)

func TestItemsAreCopies(t *testing.T) {
	a := Items()
	a[0].Title = "changed"
	if Items()[0].Title == "changed" {
		t.Error("mutating a returned slice should not affect the sample set")
	}
}

func TestItemsConsistent(t *testing.T) {
	seen := map[string]bool{}
	for _, it := range Items() {
		if seen[it.ID] {
			t.Errorf("duplicate id %q", it.ID)
		}
		seen[it.ID] = true

		if it.Type != model.ReportTypeLost && it.Type != model.ReportTypeFound {
			t.Errorf("item %s: unexpected type %q", it.ID, it.Type)
		}
		if _, ok := CategoryLabels[it.Category]; !ok {
			t.Errorf("item %s: category %q has no label", it.ID, it.Category)
		}
	}
	if len(seen) != 6 {
		t.Errorf("got %d items, want 6", len(seen))
	}
}

func TestClaimsReferenceItems(t *testing.T) {
	titles := map[string]string{}
	for _, it := range Items() {
		titles[it.ID] = it.Title
	}
	for _, c := range Claims() {
		title, ok := titles[c.ItemID]
		if !ok {
			t.Errorf("claim %s references unknown item %s", c.ID, c.ItemID)
			continue
		}
		if c.ItemTitle != title {
			t.Errorf("claim %s: title %q, want %q", c.ID, c.ItemTitle, title)
		}
		if c.State != model.ClaimPending {
			t.Errorf("claim %s: state %q, want pending", c.ID, c.State)
		}
	}
}
