package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/erazemk/unifind/internal/admin"
	"github.com/erazemk/unifind/internal/feed"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/sample"
)

func categoryLabel(c string) string {
	if l, ok := sample.CategoryLabels[c]; ok {
		return l
	}
	return c
}

func when(r model.Report) string {
	d := r.Date
	if d == "" && !r.CreatedAt.IsZero() {
		d = r.CreatedAt.Format("2006-01-02")
	}
	if r.Time != "" {
		d += " " + r.Time
	}
	return d
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// renderView writes the feed's current results in its view mode.
func renderView(w io.Writer, v feed.View) {
	switch {
	case v.Loading && len(v.Items) == 0:
		fmt.Fprintln(w, "Loading…")
		return
	case v.Empty():
		fmt.Fprintln(w, "No items match your filters.")
		return
	}

	if v.Mode == feed.ViewList {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCATEGORY\tBUILDING\tDATE")
		for _, r := range v.Items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.Status, truncate(r.Title, 32), categoryLabel(r.Category), r.Building, when(r))
		}
		tw.Flush()
	} else {
		for i, r := range v.Items {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "[%s] %s  #%s\n", r.Status, r.Title, r.ID)
			fmt.Fprintf(w, "  %s · %s · %s\n", categoryLabel(r.Category), r.Building, when(r))
			fmt.Fprintf(w, "  %s\n", truncate(r.Description, 72))
		}
	}

	n := len(v.Items)
	noun := "items"
	if n == 1 {
		noun = "item"
	}
	fmt.Fprintf(w, "\n%d %s\n", n, noun)
}

// renderReport writes every field of a single report.
func renderReport(w io.Writer, r model.Report) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	fmt.Fprintf(tw, "Status:\t%s (%s report)\n", r.Status, r.Type)
	fmt.Fprintf(tw, "Category:\t%s\n", categoryLabel(r.Category))
	fmt.Fprintf(tw, "Where:\t%s, %s, %s\n", r.LocationText, r.Building, r.Campus)
	fmt.Fprintf(tw, "When:\t%s\n", when(r))
	if r.Reporter.Name != "" {
		fmt.Fprintf(tw, "Reported by:\t%s <%s>\n", r.Reporter.Name, r.Reporter.Email)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%s\n", r.Description)
}

func renderClaims(w io.Writer, claims []model.Claim) {
	if len(claims) == 0 {
		fmt.Fprintln(w, "No claims awaiting verification.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tITEM\tCLAIMANT\tSUBMITTED\tNOTE")
	for _, c := range claims {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, truncate(c.ItemTitle, 28), c.Claimant.Name, c.SubmittedAt.Format("2006-01-02 15:04"), truncate(c.VerificationNote, 40))
	}
	tw.Flush()
}

func renderStats(w io.Writer, s admin.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Pending claims:\t%d\n", s.PendingClaims)
	fmt.Fprintf(tw, "New reports today:\t%d\n", s.NewToday)
	fmt.Fprintf(tw, "Total reports:\t%d\n", s.Total)

	statuses := make([]string, 0, len(s.ByStatus))
	for st := range s.ByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	for _, st := range statuses {
		label := "Unknown"
		if st != "" {
			label = strings.ToUpper(st[:1]) + st[1:]
		}
		fmt.Fprintf(tw, "  %s:\t%d\n", label, s.ByStatus[st])
	}
	tw.Flush()
}
