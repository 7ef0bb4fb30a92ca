// Package form validates user input, attaches the stored session and submits
// it through the API client. Nothing reaches the network until validation
// passes.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/erazemk/unifind/internal/client"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/schema"
	"github.com/erazemk/unifind/internal/session"
)

// Navigation destinations.
const (
	DestLogin = "/login"
	DestHome  = "/"
	DestItems = "/items"
)

// ErrLoginRequired is returned when an action needs a session and none is stored.
var ErrLoginRequired = errors.New("sign in required")

// API is the subset of the client used for submissions.
type API interface {
	CreateReport(ctx context.Context, token string, in model.ReportInput) (*model.Report, error)
	Login(ctx context.Context, in model.LoginInput) (*model.LoginResult, error)
	Register(ctx context.Context, in model.RegisterInput) error
	SubmitClaim(ctx context.Context, token, reportID string, in model.ClaimInput) (*model.Claim, error)
}

// Sessions loads and persists the signed-in session.
type Sessions interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, token string, user model.User) error
	Clear(ctx context.Context) error
}

// Navigator moves the presentation layer to a destination.
type Navigator interface {
	Navigate(dest string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(dest string)

// Navigate calls fn(dest).
func (fn NavigatorFunc) Navigate(dest string) { fn(dest) }

// Failure is a submission that reached the server and failed. Action is the
// title shown to the user and the fallback text when the server gave no message.
type Failure struct {
	Action string
	Err    error
}

func (f *Failure) Error() string { return f.Action + ": " + f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

// ReportForm holds the fields of a report being composed.
type ReportForm struct {
	model.ReportInput
}

// NewReportForm returns an empty form of the given type dated today.
func NewReportForm(reportType string, now time.Time) *ReportForm {
	f := &ReportForm{}
	f.Type = reportType
	f.Reset(now)
	return f
}

// Reset clears every field except the report type and sets the date to today.
func (f *ReportForm) Reset(now time.Time) {
	f.ReportInput = model.ReportInput{
		Type: f.Type,
		Date: schema.Today(now),
	}
}

// Controller runs form submissions.
type Controller struct {
	API      API
	Sessions Sessions
	Nav      Navigator
	Now      func() time.Time
}

func (c *Controller) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Controller) navigate(dest string) {
	if c.Nav != nil {
		c.Nav.Navigate(dest)
	}
}

// token returns the stored bearer token, navigating to the login destination
// when there is none.
func (c *Controller) token(ctx context.Context) (string, error) {
	sess, err := c.Sessions.Load(ctx)
	if err != nil {
		return "", err
	}
	if !sess.Authenticated() {
		c.navigate(DestLogin)
		return "", ErrLoginRequired
	}
	return sess.Token, nil
}

// SubmitReport validates and posts f. On success the form is reset and the
// created report returned; on failure f is left as it was.
func (c *Controller) SubmitReport(ctx context.Context, f *ReportForm) (*model.Report, error) {
	if err := schema.Report(f.ReportInput, c.now()); err != nil {
		return nil, err
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	r, err := c.API.CreateReport(ctx, token, f.ReportInput)
	if err != nil {
		return nil, &Failure{Action: "Report submission failed", Err: err}
	}

	slog.Info("report submitted", "id", r.ID, "type", r.Type)
	f.Reset(c.now())
	c.navigate(DestItems)
	return r, nil
}

// SubmitLogin validates credentials and stores the resulting session.
func (c *Controller) SubmitLogin(ctx context.Context, in model.LoginInput) (*model.User, error) {
	if err := schema.Login(in); err != nil {
		return nil, err
	}

	res, err := c.API.Login(ctx, in)
	if err != nil {
		return nil, &Failure{Action: "Login failed", Err: err}
	}
	if err := c.Sessions.Save(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("storing session: %w", err)
	}

	slog.Info("signed in", "email", res.User.Email)
	c.navigate(DestHome)
	return &res.User, nil
}

// SubmitRegister validates and creates an account.
func (c *Controller) SubmitRegister(ctx context.Context, in model.RegisterInput) error {
	if err := schema.Registration(in); err != nil {
		return err
	}
	if err := c.API.Register(ctx, in); err != nil {
		return &Failure{Action: "Registration failed", Err: err}
	}

	slog.Info("account created", "email", in.Email)
	c.navigate(DestLogin)
	return nil
}

// SubmitClaim validates and files an ownership claim on a report.
func (c *Controller) SubmitClaim(ctx context.Context, reportID string, in model.ClaimInput) (*model.Claim, error) {
	if err := schema.Claim(in); err != nil {
		return nil, err
	}
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	claim, err := c.API.SubmitClaim(ctx, token, reportID, in)
	if err != nil {
		return nil, &Failure{Action: "Claim submission failed", Err: err}
	}
	slog.Info("claim submitted", "report", reportID, "claim", claim.ID)
	return claim, nil
}

// Logout clears the stored session.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.Sessions.Clear(ctx); err != nil {
		return err
	}
	c.navigate(DestLogin)
	return nil
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var fe schema.FieldErrors
	if errors.As(err, &fe) {
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, fe[f])
		}
		return strings.Join(msgs, "\n")
	}
	if errors.Is(err, ErrLoginRequired) {
		return "Please sign in to continue."
	}

	fallback := "Request failed"
	var f *Failure
	if errors.As(err, &f) {
		fallback = f.Action
	}

	switch client.KindOf(err) {
	case client.KindNetwork:
		return "Could not reach the server. Check your connection and try again."
	case client.KindStatus:
		if msg := client.ServerMessage(err); msg != "" {
			return msg
		}
		return fallback
	case client.KindDecode:
		return "The server sent an unexpected response."
	default:
		return "Something went wrong. Please try again."
	}
}
