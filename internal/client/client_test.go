package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/erazemk/unifind/internal/model"
	"github.com/erazemk/unifind/internal/query"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestClient(t *testing.T, h http.Handler) (*Client, *fakeClock) {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	clock := &fakeClock{now: time.Date(2024, 12, 12, 10, 0, 0, 0, time.UTC)}
	c := New(server.URL)
	c.Now = clock.Now
	return c, clock
}

func reportsHandler(hits *atomic.Int32, reports []model.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(reports)
	}
}

func TestListReportsQueryString(t *testing.T) {
	var gotQuery, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("[]"))
	}))

	f := query.Filters{
		query.KeyType:     "lost",
		query.KeyCategory: "Wallet",
		query.KeyCampus:   "Main Campus",
		query.KeyQuery:    "black",
	}
	reports, err := c.ListReports(context.Background(), f)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if reports == nil || len(reports) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", reports)
	}
	if gotPath != "/api/reports" {
		t.Errorf("expected path /api/reports, got %q", gotPath)
	}
	want := "campus=Main+Campus&category=Wallet&q=black&type=lost"
	if gotQuery != want {
		t.Errorf("expected query %q, got %q", want, gotQuery)
	}

	// No filters, no query string.
	c.ListReports(context.Background(), query.Filters{})
	if gotQuery != "" {
		t.Errorf("expected empty query, got %q", gotQuery)
	}
}

func TestListReportsFreshnessWindow(t *testing.T) {
	var hits atomic.Int32
	c, clock := newTestClient(t, reportsHandler(&hits, []model.Report{{ID: "1", Title: "Student ID Card"}}))
	ctx := context.Background()
	f := query.Filters{query.KeyStatus: "found"}

	if _, err := c.ListReports(ctx, f); err != nil {
		t.Fatalf("first ListReports: %v", err)
	}
	clock.Advance(DefaultFreshness - time.Second)
	got, err := c.ListReports(ctx, query.Filters{query.KeyStatus: "found"})
	if err != nil {
		t.Fatalf("second ListReports: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 network call within window, got %d", hits.Load())
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("unexpected cached result %+v", got)
	}

	clock.Advance(time.Second)
	if _, err := c.ListReports(ctx, f); err != nil {
		t.Fatalf("third ListReports: %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 network calls after window, got %d", hits.Load())
	}
}

func TestListReportsNewFiltersBypassCache(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, reportsHandler(&hits, nil))
	ctx := context.Background()

	c.ListReports(ctx, query.Filters{query.KeyStatus: "open"})
	c.ListReports(ctx, query.Filters{query.KeyStatus: "open", query.KeyType: "lost"})
	c.ListReports(ctx, query.Filters{query.KeyStatus: "open"})

	if hits.Load() != 2 {
		t.Errorf("expected 2 network calls, got %d", hits.Load())
	}
}

func TestCachedResultIsACopy(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, reportsHandler(&hits, []model.Report{{ID: "1", Title: "Original"}}))
	ctx := context.Background()

	first, _ := c.ListReports(ctx, nil)
	first[0].Title = "Mutated"

	second, _ := c.ListReports(ctx, nil)
	if second[0].Title != "Original" {
		t.Errorf("cache was mutated through a returned slice: %q", second[0].Title)
	}
}

func TestConcurrentIdenticalRequestsShareOneCall(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`[{"_id":"1"}]`))
	}))

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ListReports(context.Background(), query.Filters{query.KeyType: "found"}); err != nil {
				t.Errorf("ListReports: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Errorf("expected 1 network call, got %d", hits.Load())
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    Kind
		message string
	}{
		{"server message", http.StatusBadRequest, `{"message":"Invalid campus filter"}`, KindStatus, "Invalid campus filter"},
		{"error field", http.StatusUnauthorized, `{"error":"invalid token"}`, KindStatus, "invalid token"},
		{"no body", http.StatusInternalServerError, ``, KindStatus, ""},
		{"malformed json", http.StatusOK, `[{"_id":`, KindDecode, ""},
		{"object instead of list", http.StatusOK, `{"items":[]}`, KindDecode, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			_, err := c.ListReports(context.Background(), nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != tt.kind {
				t.Errorf("expected kind %v, got %v (%v)", tt.kind, KindOf(err), err)
			}
			if ServerMessage(err) != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, ServerMessage(err))
			}
			if hits.Load() != 1 {
				t.Errorf("expected exactly one attempt, got %d", hits.Load())
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(url)
	_, err := c.ListReports(context.Background(), nil)
	if KindOf(err) != KindNetwork {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestFailedListIsNotCached(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("[]"))
	}))

	if _, err := c.ListReports(context.Background(), nil); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := c.ListReports(context.Background(), nil); err != nil {
		t.Fatalf("expected second call to succeed, got %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 calls, got %d", hits.Load())
	}
}

func TestCreateReport(t *testing.T) {
	var gotAuth, gotMethod string
	var gotBody model.ReportInput
	var listHits atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reports", reportsHandler(&listHits, nil))
	mux.HandleFunc("POST /api/reports", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Report{ID: "r1", Title: gotBody.Title, Status: model.StatusOpen})
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	c.ListReports(ctx, nil)

	in := model.ReportInput{Type: "found", Title: "Blue Umbrella", Date: "2024-12-01"}
	r, err := c.CreateReport(ctx, "tok-123", in)
	if err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	if r.ID != "r1" {
		t.Errorf("expected created id r1, got %q", r.ID)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("expected POST, got %s", gotMethod)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotBody != in {
		t.Errorf("server received %+v, want %+v", gotBody, in)
	}

	// Creation invalidates the list cache.
	c.ListReports(ctx, nil)
	if listHits.Load() != 2 {
		t.Errorf("expected list to be refetched after create, got %d calls", listHits.Load())
	}
}

func TestListInFlightDuringCreateIsNotCached(t *testing.T) {
	var listHits atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/reports", func(w http.ResponseWriter, r *http.Request) {
		if listHits.Add(1) == 1 {
			close(entered)
			<-release
			w.Write([]byte("[]"))
			return
		}
		w.Write([]byte(`[{"_id":"r1"}]`))
	})
	mux.HandleFunc("POST /api/reports", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Report{ID: "r1"})
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := c.ListReports(ctx, nil); err != nil {
			t.Errorf("ListReports: %v", err)
		}
	}()
	<-entered

	if _, err := c.CreateReport(ctx, "tok", model.ReportInput{Title: "Blue Umbrella"}); err != nil {
		t.Fatalf("CreateReport: %v", err)
	}
	close(release)
	<-done

	got, err := c.ListReports(ctx, nil)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("expected the created report, got %+v", got)
	}
	if listHits.Load() != 2 {
		t.Errorf("expected 2 list calls, got %d", listHits.Load())
	}
}

func TestCanceledCallerDoesNotFailSharedRequest(t *testing.T) {
	var hits atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(entered)
		}
		<-release
		w.Write([]byte(`[{"_id":"1"}]`))
	}))
	f := query.Filters{query.KeyStatus: "lost"}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.ListReports(first, f)
		firstErr <- err
	}()
	<-entered
	cancel()

	if err := <-firstErr; KindOf(err) != KindNetwork {
		t.Errorf("expected network error for the canceled caller, got %v", err)
	}

	secondErr := make(chan error, 1)
	var got []model.Report
	go func() {
		var err error
		got, err = c.ListReports(context.Background(), f)
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	if err := <-secondErr; err != nil {
		t.Fatalf("second caller: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 report, got %d", len(got))
	}
	if hits.Load() != 1 {
		t.Errorf("expected the second caller to share the first request, got %d calls", hits.Load())
	}
}

func TestLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in model.LoginInput
		json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "correct horse" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid email or password"}`)
			return
		}
		json.NewEncoder(w).Encode(model.LoginResult{
			Token: "tok",
			User:  model.User{ID: "u1", Email: in.Email, Role: model.RoleStudent},
		})
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	res, err := c.Login(ctx, model.LoginInput{Email: "a@uni.edu", Password: "correct horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token != "tok" || res.User.Email != "a@uni.edu" {
		t.Errorf("unexpected login result %+v", res)
	}

	_, err = c.Login(ctx, model.LoginInput{Email: "a@uni.edu", Password: "wrong"})
	if ServerMessage(err) != "Invalid email or password" {
		t.Errorf("expected verbatim server message, got %v", err)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"user":{"id":"u1"}}`)
	}))

	_, err := c.Login(context.Background(), model.LoginInput{Email: "a@uni.edu", Password: "x"})
	if KindOf(err) != KindDecode {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestClaimsEndpoints(t *testing.T) {
	var paths []string
	var mu sync.Mutex
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()
		switch r.URL.Path {
		case "/api/claims":
			io.WriteString(w, `[{"id":"c1","itemTitle":"Student ID Card","state":"pending"}]`)
		case "/api/reports/2/claims":
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":"c9","itemId":"2","state":"pending"}`)
		default:
			io.WriteString(w, `{"message":"ok"}`)
		}
	}))
	ctx := context.Background()

	claims, err := c.ListClaims(ctx, "admin-tok")
	if err != nil || len(claims) != 1 || claims[0].ID != "c1" {
		t.Fatalf("ListClaims: %+v, %v", claims, err)
	}
	claim, err := c.SubmitClaim(ctx, "tok", "2", model.ClaimInput{VerificationNote: "Name matches ID"})
	if err != nil || claim.ID != "c9" {
		t.Fatalf("SubmitClaim: %+v, %v", claim, err)
	}
	if err := c.ApproveClaim(ctx, "admin-tok", "c1"); err != nil {
		t.Fatalf("ApproveClaim: %v", err)
	}
	if err := c.RejectClaim(ctx, "admin-tok", "c1"); err != nil {
		t.Fatalf("RejectClaim: %v", err)
	}

	want := []string{
		"GET /api/claims",
		"POST /api/reports/2/claims",
		"POST /api/claims/c1/approve",
		"POST /api/claims/c1/reject",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d requests, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("request %d: got %q, want %q", i, paths[i], want[i])
		}
	}
}
