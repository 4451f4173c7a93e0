package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/topmolt/cli/src/client/config"
)

// request is what the fake service saw
type request struct {
	Method string
	URI    string
	Auth   string
	Body   string
}

// fakeService answers by "METHOD path" and records every request
type fakeService struct {
	*httptest.Server
	mu       sync.Mutex
	routes   map[string]fakeResponse
	requests []request
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{routes: map[string]fakeResponse{}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, request{
			Method: r.Method,
			URI:    r.RequestURI,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(b),
		})
		resp, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if !ok {
			resp = fakeResponse{http.StatusNotFound, `{"error":"Not found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeService) on(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = fakeResponse{status, body}
}

func (f *fakeService) seen() []request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]request(nil), f.requests...)
}

func (f *fakeService) last(t *testing.T) request {
	t.Helper()
	reqs := f.seen()
	if len(reqs) == 0 {
		t.Fatal("no request reached the service")
	}
	return reqs[len(reqs)-1]
}

// testEnv isolates HOME, the environment and the config file
type testEnv struct {
	t      *testing.T
	config string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv("NO_COLOR", "1")
	t.Setenv("LANG", "en_US.UTF-8")
	return &testEnv{t: t, config: filepath.Join(home, "topmolt.yml")}
}

// run executes the CLI with the test config file prepended
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	out, _, err := e.runWithStderr(args...)
	return out, err
}

func (e *testEnv) runWithStderr(args ...string) (string, string, error) {
	e.t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--config", e.config}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (e *testEnv) store() *config.Store {
	e.t.Helper()
	s, err := config.Open(e.config)
	if err != nil {
		e.t.Fatalf("open config: %v", err)
	}
	return s
}

// resetFlags returns every flag in the tree to its default between runs
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(s), v); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, s)
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	want := []string{
		"register", "heartbeat", "stats", "status", "update", "leaderboard", "search",
		"categories", "verify", "claim", "me", "login", "logout", "config", "tui", "shell", "version",
	}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("-o", "yaml", "version")
	if err == nil || !strings.Contains(err.Error(), "invalid output format") {
		t.Errorf("err = %v", err)
	}
}

func TestOutputFormatFromConfig(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store().Set(config.KeyOutputFormat, "plain"); err != nil {
		t.Fatal(err)
	}

	out, err := env.run("version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "dev" {
		t.Errorf("plain version output = %q, want dev", out)
	}
}

func TestServerFlagOverridesConfig(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/categories", 200, `{"data":[]}`)

	if err := env.store().SetBaseURL("http://127.0.0.1:1"); err != nil {
		t.Fatal(err)
	}

	if _, err := env.run("--server", svc.URL, "categories", "--no-cache"); err != nil {
		t.Fatalf("categories error = %v", err)
	}
	if len(svc.seen()) != 1 {
		t.Errorf("requests = %d, want 1", len(svc.seen()))
	}
}

func TestCredentialsFromEnvironment(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 200, `{"data":{"handle":"ada"}}`)
	t.Setenv(config.EnvBaseURL, svc.URL)
	t.Setenv(config.EnvAPIKey, "env-key")

	if _, err := env.run("-o", "json", "me"); err != nil {
		t.Fatalf("me error = %v", err)
	}
	if got := svc.last(t).Auth; got != "Bearer env-key" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestTokenFlagOverridesStoredKey(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 200, `{"data":{"handle":"ada"}}`)
	s := env.store()
	if err := s.SetBaseURL(svc.URL); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAPIKey("stored"); err != nil {
		t.Fatal(err)
	}

	if _, err := env.run("-t", "flag-key", "-o", "json", "me"); err != nil {
		t.Fatal(err)
	}
	if got := svc.last(t).Auth; got != "Bearer flag-key" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestAPIErrorMessageIsReturned(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/leaderboard", 500, `{"error":"database unavailable"}`)

	_, err := env.run("-s", svc.URL, "leaderboard")
	if err == nil || err.Error() != "failed to fetch leaderboard: database unavailable" {
		t.Errorf("err = %v", err)
	}
}

func TestVersionJSON(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run("-o", "json", "version")
	if err != nil {
		t.Fatal(err)
	}
	var info map[string]string
	decodeJSON(t, out, &info)
	if info["version"] == "" || info["go_version"] == "" {
		t.Errorf("version info = %v", info)
	}
}

func TestVersionTable(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run("-o", "table", "-s", "https://staging.topmolt.io", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "topmolt dev") || !strings.Contains(out, "https://staging.topmolt.io") {
		t.Errorf("version output = %q", out)
	}
}
