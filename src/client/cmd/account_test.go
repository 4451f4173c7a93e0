package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/topmolt/cli/src/client/config"
)

func TestMeRequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)

	out, err := env.run("-s", svc.URL, "-o", "table", "me")
	if !errors.Is(err, errNoAPIKey) {
		t.Errorf("err = %v, want errNoAPIKey", err)
	}
	if !strings.Contains(out, "config set-key") {
		t.Errorf("output should explain how to set a key: %q", out)
	}
	if len(svc.seen()) != 0 {
		t.Error("no request should be sent without a key")
	}
}

func TestMeShowsProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 200, `{"data":{"handle":"ada","name":"Ada","verified":true,
		"agents":[{"name":"scout","rank":4}]}}`)

	out, err := env.run("-s", svc.URL, "-t", "k", "-o", "table", "me")
	if err != nil {
		t.Fatalf("me error = %v", err)
	}
	for _, want := range []string{"Operator Profile", "ada", "Ada", "(not set)", "Yes", "scout", "#4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if r := svc.last(t); r.Method != "GET" || r.Auth != "Bearer k" {
		t.Errorf("request = %+v", r)
	}
}

func TestProfileAliasUpdates(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("PUT", "/api/operators/me", 200, `{"data":{"handle":"ada","bio":"I build agents"}}`)

	out, err := env.run("-s", svc.URL, "-t", "k", "-o", "table", "profile", "--bio", "I build agents", "--twitter", "@ada")
	if err != nil {
		t.Fatalf("profile error = %v", err)
	}
	if !strings.Contains(out, "Profile updated!") {
		t.Errorf("output = %q", out)
	}
	assertJSONEqual(t, `{"bio":"I build agents","twitter":"ada"}`, svc.last(t).Body)
}

func TestLoginWithTokenFlag(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 200, `{"data":{"handle":"ada"}}`)

	out, err := env.run("-s", svc.URL, "-t", "tm_login", "login")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(out, "Logged in as @ada") {
		t.Errorf("output = %q", out)
	}

	s := env.store()
	if got := s.GetString(config.KeyServerToken); got != "tm_login" {
		t.Errorf("stored key = %q", got)
	}
	if got := s.GetString(config.KeyServerAddress); got != svc.URL {
		t.Errorf("stored server = %q, want %q", got, svc.URL)
	}
	if got := svc.last(t).Auth; got != "Bearer tm_login" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestLoginFromStdin(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 200, `{"data":{"handle":"ada"}}`)

	rootCmd.SetIn(strings.NewReader("tm_piped\n"))
	resetFlags(rootCmd)
	var out strings.Builder
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&strings.Builder{})
	rootCmd.SetArgs([]string{"--config", env.config, "-s", svc.URL, "login"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("login error = %v", err)
	}

	if got := env.store().GetString(config.KeyServerToken); got != "tm_piped" {
		t.Errorf("stored key = %q", got)
	}
}

func TestLoginInvalidKeyWarns(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/operators/me", 401, `{"error":"Invalid API key"}`)

	_, stderr, err := env.runWithStderr("-s", svc.URL, "-t", "bad", "login")
	if err != nil {
		t.Fatalf("login error = %v", err)
	}
	if !strings.Contains(stderr, "Invalid API key") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestLoginEmptyKey(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("login"); err == nil || !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("err = %v", err)
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	if err := env.store().SetAPIKey("k"); err != nil {
		t.Fatal(err)
	}

	out, err := env.run("logout")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "API key removed") {
		t.Errorf("output = %q", out)
	}
	if got := env.store().GetString(config.KeyServerToken); got != "" {
		t.Errorf("key still stored: %q", got)
	}

	out, err = env.run("logout")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No saved API key") {
		t.Errorf("second logout output = %q", out)
	}
}
