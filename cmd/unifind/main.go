package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/unifind/internal/client"
	"github.com/erazemk/unifind/internal/config"
	"github.com/erazemk/unifind/internal/db"
	"github.com/erazemk/unifind/internal/form"
	"github.com/erazemk/unifind/internal/logging"
	"github.com/erazemk/unifind/internal/schema"
	"github.com/erazemk/unifind/internal/session"
)

// options holds the persistent flags.
type options struct {
	configPath string
	apiURL     string
	sessionDB  string
	verbose    bool
}

// app is what every subcommand works with once the root has initialized.
type app struct {
	cfg      *config.Config
	db       *sql.DB
	client   *client.Client
	sessions *session.Store
	forms    *form.Controller

	closeLog func()
}

func (a *app) init(cmd *cobra.Command, opts *options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	closeLog, err := logging.Setup(logging.Options{Level: level, Stdout: cmd.ErrOrStderr(), Stderr: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if opts.apiURL != "" {
		cfg.APIURL = strings.TrimRight(opts.apiURL, "/")
	}
	if opts.sessionDB != "" {
		cfg.SessionDB = opts.sessionDB
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := os.MkdirAll(filepath.Dir(cfg.SessionDB), 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	a.db, err = db.OpenStorage(cfg.SessionDB)
	if err != nil {
		return err
	}
	slog.Debug("session storage ready", "path", cfg.SessionDB)

	a.client = client.New(cfg.APIURL)
	a.client.Freshness = cfg.GetCacheTTL()
	a.client.HTTP.Timeout = cfg.GetRequestTimeout()

	a.sessions = session.NewStore(a.db)
	a.forms = &form.Controller{
		API:      a.client,
		Sessions: a.sessions,
		Nav:      hintNavigator{w: cmd.OutOrStdout()},
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
}

// hintNavigator turns navigation into a hint about the next command to run.
type hintNavigator struct {
	w io.Writer
}

func (n hintNavigator) Navigate(dest string) {
	switch dest {
	case form.DestLogin:
		fmt.Fprintln(n.w, "Sign in with: unifind login")
	case form.DestItems:
		fmt.Fprintln(n.w, "See all reports with: unifind browse")
	case form.DestHome:
		fmt.Fprintln(n.w, "Browse reports with: unifind browse")
	}
}

func newRootCmd(a *app) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "unifind",
		Short: "Campus lost & found",
		Long: `unifind reports lost and found items on campus, lets you browse and
filter everyone's reports, and files ownership claims.

The API address comes from --api, UNIFIND_API_URL or the config file
(default http://localhost:5000).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (default: $UNIFIND_CONFIG or the user config dir)")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL")
	root.PersistentFlags().StringVar(&opts.sessionDB, "session-db", "", "Session database path")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newReportCmd(a),
		newBrowseCmd(a),
		newShowCmd(a),
		newClaimCmd(a),
		newClaimsCmd(a),
		newStatsCmd(a),
	)
	return root
}

// execute runs the CLI with the given arguments and streams.
func execute(ctx context.Context, args []string, in io.Reader, out, errw io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errw)
	return root.ExecuteContext(ctx)
}

// describe returns the text shown for a failed command.
func describe(err error) string {
	var fe schema.FieldErrors
	var failure *form.Failure
	switch {
	case errors.As(err, &fe), errors.As(err, &failure), errors.Is(err, form.ErrLoginRequired), client.KindOf(err) != 0:
		return form.UserMessage(err)
	default:
		return err.Error()
	}
}

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", describe(err))
		os.Exit(1)
	}
}
