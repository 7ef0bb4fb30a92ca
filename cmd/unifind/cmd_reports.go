package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/erazemk/unifind/internal/feed"
	"github.com/erazemk/unifind/internal/form"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
	"github.com/erazemk/unifind/internal/sample"
	"github.com/erazemk/unifind/internal/schema"
)

func newReportCmd(a *app) *cobra.Command {
	var in model.ReportInput

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a lost or found item",
		Long: fmt.Sprintf(`Report a lost or found item. You must be signed in.

Categories: %s
Buildings:  %s`, strings.Join(model.Categories, ", "), strings.Join(sample.Buildings, ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := form.NewReportForm(in.Type, time.Now())
			date := f.Date
			f.ReportInput = in
			if f.Date == "" {
				f.Date = date
			}

			r, err := a.forms.SubmitReport(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report %s created: %s (%s)\n", r.ID, r.Title, r.Status)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&in.Type, "type", "t", model.ReportTypeLost, "lost or found")
	fl.StringVar(&in.Title, "title", "", "Short title (min 5 characters)")
	fl.StringVarP(&in.Description, "description", "d", "", "Description (min 20 characters)")
	fl.StringVar(&in.Category, "category", "", "Category")
	fl.StringVar(&in.Campus, "campus", sample.Campus, "Campus")
	fl.StringVar(&in.Building, "building", "", "Building")
	fl.StringVarP(&in.LocationText, "location", "l", "", "Where exactly (min 5 characters)")
	fl.StringVar(&in.Date, "date", "", "Date as YYYY-MM-DD (default: today)")
	fl.StringVar(&in.Time, "time", "", "Time as HH:MM")
	return cmd
}

func newBrowseCmd(a *app) *cobra.Command {
	var (
		values      = map[query.Key]*string{}
		view        string
		local       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and filter reports",
		Long: `Browse reports. Every filter is optional; "all" means no constraint.

With --interactive, read commands from stdin and refresh as filters change:
  <filter> <value>   set type, status, category, campus, building, from or to
  search <text>      stage search text
  go                 apply the staged search
  reset              clear all filters
  view grid|list     switch layout
  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			initial := query.Filters{}
			for k, v := range values {
				if *v != "" {
					initial[k] = *v
				}
			}
			if err := schema.FilterDates(query.New(initial).Effective()); err != nil {
				return err
			}

			var src feed.Fetcher = a.client
			if local {
				src = feed.Local{Items: sample.Items()}
			}

			f := feed.New(cmd.Context(), query.New(initial), src)
			mode, err := parseView(view)
			if err != nil {
				return err
			}
			f.SetViewMode(mode)

			if interactive {
				return browseInteractive(cmd.Context(), f, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			f.Refresh()
			f.Wait()
			v := f.View()
			f.Close()
			if v.Err != nil {
				return v.Err
			}
			renderView(cmd.OutOrStdout(), v)
			return nil
		},
	}

	fl := cmd.Flags()
	for _, k := range query.Keys {
		values[k] = new(string)
	}
	fl.StringVar(values[query.KeyType], "type", "", "lost or found")
	fl.StringVar(values[query.KeyStatus], "status", "", "lost, found, open, claimed or resolved")
	fl.StringVar(values[query.KeyCategory], "category", "", "Category")
	fl.StringVar(values[query.KeyCampus], "campus", "", "Campus")
	fl.StringVar(values[query.KeyBuilding], "building", "", "Building")
	fl.StringVar(values[query.KeyFrom], "from", "", "Earliest date (YYYY-MM-DD)")
	fl.StringVar(values[query.KeyTo], "to", "", "Latest date (YYYY-MM-DD)")
	fl.StringVarP(values[query.KeyQuery], "search", "q", "", "Search titles and descriptions")
	fl.StringVar(&view, "view", string(feed.ViewGrid), "grid or list")
	fl.BoolVar(&local, "local", false, "Browse the built-in sample data without a server")
	fl.BoolVarP(&interactive, "interactive", "i", false, "Read filter commands from stdin")
	return cmd
}

func parseView(s string) (feed.ViewMode, error) {
	switch m := feed.ViewMode(strings.ToLower(s)); m {
	case feed.ViewGrid, feed.ViewList:
		return m, nil
	default:
		return "", fmt.Errorf("unknown view %q: use grid or list", s)
	}
}

// browseInteractive applies commands from in as they arrive. Results are
// rendered whenever the latest request completes.
func browseInteractive(ctx context.Context, f *feed.Feed, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	locked := func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		fn()
	}
	f.OnUpdate = func(v feed.View) {
		locked(func() {
			if v.Err != nil {
				fmt.Fprintln(out, "error:", describe(v.Err))
				return
			}
			renderView(out, v)
		})
	}
	defer f.Close()

	f.Refresh()

	keys := map[string]query.Key{}
	for _, k := range query.Keys {
		keys[string(k)] = k
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		name, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch name {
		case "":
		case "quit", "exit":
			f.Wait()
			return nil
		case "search":
			f.SetSearchText(arg)
		case "go":
			f.CommitSearch()
		case "reset":
			f.ResetAll()
		case "view":
			mode, err := parseView(arg)
			if err != nil {
				locked(func() { fmt.Fprintln(out, err) })
				continue
			}
			f.SetViewMode(mode)
			locked(func() { renderView(out, f.View()) })
		default:
			k, ok := keys[name]
			if !ok || k == query.KeyQuery {
				locked(func() { fmt.Fprintf(out, "unknown command %q\n", name) })
				continue
			}
			f.SetFilter(k, arg)
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	f.Wait()
	return nil
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <report-id>",
		Short: "Show a single report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.client.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), *r)
			return nil
		},
	}
}
