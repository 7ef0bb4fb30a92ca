package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/unifind/internal/api"
	"github.com/erazemk/unifind/internal/config"
	"github.com/erazemk/unifind/internal/form"
	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/sample"
	"github.com/erazemk/unifind/internal/store"
)

type testEnv struct {
	t    *testing.T
	url  string
	dir  string
	last string // stderr of the last run
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvConfig, "")

	mem := store.NewMemory()
	mem.HashCost = bcrypt.MinCost
	mem.Seed(sample.Items(), sample.Claims())
	for _, in := range []model.RegisterInput{
		{Name: "Admin", Email: "admin@university.edu", Password: "password1", Role: model.RoleAdmin},
		{Name: "Sarah Chen", Email: "sarah.c@university.edu", Password: "password1", Role: model.RoleStudent},
	} {
		if _, err := mem.CreateUser(context.Background(), in); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
	}

	server := httptest.NewServer(api.NewRouter(mem, "test-secret"))
	t.Cleanup(server.Close)

	return &testEnv{t: t, url: server.URL, dir: t.TempDir()}
}

func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	base := []string{
		"--api", e.url,
		"--session-db", filepath.Join(e.dir, "session.sqlite3"),
		"--config", filepath.Join(e.dir, "config.yaml"),
	}
	var out, errw bytes.Buffer
	err := execute(context.Background(), append(base, args...), strings.NewReader(stdin), &out, &errw)
	e.last = errw.String()
	return out.String(), err
}

func (e *testEnv) mustRun(stdin string, args ...string) string {
	e.t.Helper()
	out, err := e.run(stdin, args...)
	if err != nil {
		e.t.Fatalf("unifind %s: %v\nstdout:\n%s\nstderr:\n%s", strings.Join(args, " "), err, out, e.last)
	}
	return out
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestBrowseLocal(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("", "browse", "--local", "--status", "found", "--view", "list")
	assertContains(t, out, "STATUS", "Student ID Card", "Black Wireless Earbuds", "Car Keys with Keychain", "3 items")
	if strings.Contains(out, "MacBook") {
		t.Errorf("lost item shown for status=found:\n%s", out)
	}

	out = e.mustRun("", "browse", "--local", "--category", "clothing")
	assertContains(t, out, "No items match your filters.")

	if _, err := e.run("", "browse", "--local", "--view", "table"); err == nil {
		t.Error("expected error for unknown view")
	}

	_, err := e.run("", "browse", "--local", "--from", "2024-1-5")
	if err == nil {
		t.Fatal("expected error for malformed --from")
	}
	if got := describe(err); !strings.Contains(got, "expected YYYY-MM-DD") {
		t.Errorf("describe() = %q", got)
	}
}

func TestBrowseServer(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("", "browse", "-q", "KEYS", "--type", "all")
	assertContains(t, out, "Car Keys with Keychain", "1 item")

	out = e.mustRun("", "show", "4")
	assertContains(t, out, "Blue Backpack with Books", "Engineering Building - Room 201", "Emily Wang")
}

func TestBrowseInteractive(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustRun("status found\nview list\nsearch earbuds\ngo\nbogus x\nquit\n", "browse", "--local", "-i")
	assertContains(t, out, "STATUS", "Black Wireless Earbuds", `unknown command "bogus"`)
}

func TestStudentFlow(t *testing.T) {
	e := newTestEnv(t)

	assertContains(t, e.mustRun("", "whoami"), "Not signed in.")

	reportArgs := []string{
		"report", "--type", "found",
		"--title", "Blue Umbrella",
		"--description", "Compact blue umbrella left on a bench by the entrance.",
		"--category", "accessories",
		"--building", "Student Center",
		"--location", "Bench near the east entrance",
		"--date", "2024-12-11",
	}

	out, err := e.run("", reportArgs...)
	if !errors.Is(err, form.ErrLoginRequired) {
		t.Fatalf("report without session: err = %v", err)
	}
	assertContains(t, out, "Sign in with: unifind login")

	out = e.mustRun("password1\n", "login", "-e", "sarah.c@university.edu")
	assertContains(t, out, "Signed in as Sarah Chen (student)")
	assertContains(t, e.mustRun("", "whoami"), "sarah.c@university.edu")

	out = e.mustRun("", reportArgs...)
	assertContains(t, out, "Blue Umbrella (found)", "See all reports with: unifind browse")

	out = e.mustRun("", "browse", "-q", "umbrella", "--view", "list")
	assertContains(t, out, "Blue Umbrella", "Student Center")

	out = e.mustRun("", "claim", "3", "--note", "Left earbud has a scratch on it")
	assertContains(t, out, "Black Wireless Earbuds")

	if _, err := e.run("", "claims", "list"); !errors.Is(err, errAdminOnly) {
		t.Errorf("claims list as student: err = %v, want errAdminOnly", err)
	}

	assertContains(t, e.mustRun("", "logout"), "Signed out.")
	assertContains(t, e.mustRun("", "whoami"), "Not signed in.")
}

func TestAdminFlow(t *testing.T) {
	e := newTestEnv(t)
	e.mustRun("", "login", "-e", "admin@university.edu", "-p", "password1")

	out := e.mustRun("", "claims", "list")
	assertContains(t, out, "David Kim", "Maria Garcia", "Emily Wang")

	out = e.mustRun("", "claims", "approve", "1")
	assertContains(t, out, "claim 1: approve sent")

	out = e.mustRun("", "claims", "list")
	if strings.Contains(out, "David Kim") {
		t.Errorf("approved claim still pending:\n%s", out)
	}

	out, err := e.run("", "claims", "reject", "nope")
	if err == nil {
		t.Error("expected error rejecting unknown claim")
	}
	assertContains(t, out, "claim nope: Claim not found")

	out = e.mustRun("", "stats")
	assertContains(t, out, "Pending claims:", "Total reports:", "Claimed:")
}

func TestValidationMessages(t *testing.T) {
	e := newTestEnv(t)

	_, err := e.run("", "register", "-n", "Sarah Chen", "-e", "sarah@gmail.com", "-p", "longenough")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := describe(err); got != "Please use a college email (.edu)" {
		t.Errorf("describe() = %q", got)
	}

	_, err = e.run("", "login", "-e", "sarah.c@university.edu", "-p", "wrong")
	if got := describe(err); got != "Invalid email or password" {
		t.Errorf("describe() = %q, want server message", got)
	}
}
