package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/topmolt/cli/src/client/config"
)

func TestRegisterStoresKeyForLaterCalls(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/register", 201, `{
		"api_key": "tm_secret_key",
		"verification_code": "MOLT-1234",
		"claim_url": "https://topmolt.io/claim/my-agent",
		"data": {"username": "my-agent", "category": "research", "credit_score": 0}
	}`)
	svc.on("POST", "/api/agents/my-agent/heartbeat", 200, `{"data":{"credit_score":3}}`)

	if err := env.store().SetBaseURL(svc.URL); err != nil {
		t.Fatal(err)
	}

	out, err := env.run("-o", "table", "register", "-n", "My  Agent", "--twitter", "@mybot", "--skills", "search, summarize,", "--category", "research")
	if err != nil {
		t.Fatalf("register error = %v", err)
	}
	for _, want := range []string{"Agent registered successfully!", "my-agent", "MOLT-1234", "https://topmolt.io/claim/my-agent"} {
		if !strings.Contains(out, want) {
			t.Errorf("register output missing %q:\n%s", want, out)
		}
	}

	reg := svc.last(t)
	if reg.Auth != "" {
		t.Errorf("register should be unauthenticated, got %q", reg.Auth)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(reg.Body), &body); err != nil {
		t.Fatal(err)
	}
	if body["name"] != "my-agent" || body["display_name"] != "My  Agent" || body["twitter"] != "mybot" || body["category"] != "research" {
		t.Errorf("register body = %v", body)
	}
	if skills, _ := body["skills"].([]any); len(skills) != 2 || skills[0] != "search" || skills[1] != "summarize" {
		t.Errorf("skills = %v", body["skills"])
	}

	if got := env.store().GetString(config.KeyServerToken); got != "tm_secret_key" {
		t.Fatalf("stored key = %q", got)
	}

	if _, err := env.run("-o", "json", "heartbeat", "-n", "my-agent"); err != nil {
		t.Fatalf("heartbeat error = %v", err)
	}
	if got := svc.last(t).Auth; got != "Bearer tm_secret_key" {
		t.Errorf("Authorization = %q, want the registered key", got)
	}
}

func TestRegisterDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/register", 200, `{"api_key":"k","data":{"username":"scout"}}`)

	if _, err := env.run("-s", svc.URL, "-o", "json", "register", "-n", "Scout"); err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(svc.last(t).Body), &body); err != nil {
		t.Fatal(err)
	}
	if body["category"] != "general" || body["name"] != "scout" || body["display_name"] != "Scout" {
		t.Errorf("register body = %v", body)
	}
}

func TestRegisterRequiresName(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("register"); err == nil || !strings.Contains(err.Error(), `"name" not set`) {
		t.Errorf("err = %v", err)
	}
}

func TestRegisterFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/register", 409, `{"error":"Agent name already taken"}`)

	_, err := env.run("-s", svc.URL, "register", "-n", "scout")
	if err == nil || err.Error() != "registration failed: Agent name already taken" {
		t.Errorf("err = %v", err)
	}
	if got := env.store().GetString(config.KeyServerToken); got != "" {
		t.Errorf("key stored after failure: %q", got)
	}
}

func TestHeartbeatSendsOnlyGivenStats(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/heartbeat", 200, `{"data":{"credit_score":12.5}}`)

	out, err := env.run("-s", svc.URL, "-t", "k", "-o", "table", "heartbeat", "-n", "scout",
		"--status", "busy", "--tasks-completed", "5", "--error-rate", "0", "--integrations", "github,slack")
	if err != nil {
		t.Fatalf("heartbeat error = %v", err)
	}
	if !strings.Contains(out, "Heartbeat sent!") || !strings.Contains(out, "12.5") {
		t.Errorf("output = %q", out)
	}

	want := `{"status":"busy","stats":{"tasksCompleted":5,"errorRate":0,"integrations":["github","slack"]}}`
	assertJSONEqual(t, want, svc.last(t).Body)
}

func TestHeartbeatWithoutStats(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/heartbeat", 200, `{"data":{"credit_score":1}}`)

	if _, err := env.run("-s", svc.URL, "-o", "plain", "heartbeat", "-n", "scout"); err != nil {
		t.Fatal(err)
	}
	assertJSONEqual(t, `{"status":"online"}`, svc.last(t).Body)
}

func TestHeartbeatRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)

	tests := [][]string{
		{"heartbeat", "-n", "scout", "--status", "sleeping"},
		{"heartbeat", "-n", "scout", "--accuracy-rate", "101"},
		{"heartbeat", "-n", "scout", "--tasks-completed", "-1"},
	}
	for _, args := range tests {
		if _, err := env.run(append([]string{"-s", svc.URL}, args...)...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
	if n := len(svc.seen()); n != 0 {
		t.Errorf("%d requests sent for invalid input", n)
	}
}

func TestStatsCommand(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/stats", 200, `{"success":true,"creditScore":77}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "stats", "-n", "scout", "--hours-worked", "1.5", "--skills", "go,sql")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}
	if !strings.Contains(out, "Statistics reported!") || !strings.Contains(out, "77") {
		t.Errorf("output = %q", out)
	}
	assertJSONEqual(t, `{"hoursWorked":1.5,"skills":["go","sql"]}`, svc.last(t).Body)
}

func TestStatsRequiresAStat(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)

	_, err := env.run("-s", svc.URL, "stats", "-n", "scout")
	if err == nil || !strings.Contains(err.Error(), "no statistics given") {
		t.Errorf("err = %v", err)
	}
	if len(svc.seen()) != 0 {
		t.Error("no request should be sent without stats")
	}
}

func TestStatusFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/agents/scout", 200, `{"data":{
		"name":"Scout Bot","slug":"scout","verified":true,"credit_score":120,
		"rank":{"global":3,"category":1},
		"category":{"id":"research","name":"Research","emoji":"🔬"},
		"twitter":"scoutbot","skills":["search","rank"],"description":"Finds things"
	}}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "status", "@scout")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	for _, want := range []string{"Scout Bot", "@scout", "Verified", "#3", "120", "🔬 Research", "@scoutbot", "search, rank", "Finds things"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
	if got := svc.last(t).URI; got != "/api/agents/scout" {
		t.Errorf("request = %q", got)
	}
}

func TestStatusBareRankAndCategory(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/agents/atlas", 200, `{"data":{"name":"atlas","rank":7,"category":"coding"}}`)

	out, err := env.run("-s", svc.URL, "-o", "plain", "status", "atlas")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "atlas #7 0" {
		t.Errorf("plain output = %q", out)
	}
}

func TestStatusNotFound(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)

	_, err := env.run("-s", svc.URL, "status", "@ghost")
	if err == nil || err.Error() != "Agent @ghost not found" {
		t.Errorf("err = %v", err)
	}
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("PUT", "/api/agents/scout", 200, `{"name":"scout","description":"new"}`)

	if _, err := env.run("-s", svc.URL, "-t", "k", "-o", "json", "update", "-n", "scout", "--description", "new", "--twitter", "@sb"); err != nil {
		t.Fatalf("update error = %v", err)
	}
	assertJSONEqual(t, `{"description":"new","twitter":"sb"}`, svc.last(t).Body)
}

func TestUpdateClearsSkills(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("PUT", "/api/agents/scout", 200, `{"name":"scout"}`)

	if _, err := env.run("-s", svc.URL, "-t", "k", "-o", "json", "update", "-n", "scout", "--skills", ""); err != nil {
		t.Fatalf("update error = %v", err)
	}
	assertJSONEqual(t, `{"skills":[]}`, svc.last(t).Body)

	if _, err := env.run("-s", svc.URL, "-t", "k", "-o", "json", "update", "-n", "scout", "--skills", "go, sql"); err != nil {
		t.Fatal(err)
	}
	assertJSONEqual(t, `{"skills":["go","sql"]}`, svc.last(t).Body)
}

func TestRegisterShowsRequestedDisplayName(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/register", 200, `{"api_key":"k","data":{"username":"scout"}}`)

	out, err := env.run("-s", svc.URL, "-o", "json", "register", "-n", "scout", "--display-name", "Scout Bot")
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		DisplayName string `json:"display_name"`
		Agent       struct {
			DisplayName string `json:"display_name"`
		} `json:"agent"`
	}
	decodeJSON(t, out, &res)
	if res.DisplayName != "Scout Bot" || res.Agent.DisplayName != "Scout Bot" {
		t.Errorf("display names = %q, %q", res.DisplayName, res.Agent.DisplayName)
	}
}

func TestUpdateNeedsAField(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.run("update", "-n", "scout"); err == nil || !strings.Contains(err.Error(), "nothing to update") {
		t.Errorf("err = %v", err)
	}
}

func TestVerify(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/verify", 200, `{"data":{"verified":true}}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "verify", "-n", "scout", "--tweet", "https://x.com/sb/status/1", "--code", "MOLT-1")
	if err != nil {
		t.Fatalf("verify error = %v", err)
	}
	if !strings.Contains(out, "Agent verified!") {
		t.Errorf("output = %q", out)
	}
	assertJSONEqual(t, `{"tweet_url":"https://x.com/sb/status/1","verification_code":"MOLT-1"}`, svc.last(t).Body)
}

func TestVerifyFailureShowsHints(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/verify", 400, `{"error":"Tweet not found","details":"check the URL"}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "verify", "-n", "scout", "--tweet", "u")
	if err == nil || err.Error() != "verification failed: Tweet not found: check the URL" {
		t.Errorf("err = %v", err)
	}
	if !strings.Contains(out, "The tweet must be public") {
		t.Errorf("hints missing: %q", out)
	}
}

func TestVerifyNotVerified(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("POST", "/api/agents/scout/verify", 200, `{"data":{"verified":false}}`)

	if _, err := env.run("-s", svc.URL, "-o", "table", "verify", "-n", "scout", "--tweet", "u"); err == nil {
		t.Error("an unverified result should be an error")
	}
}

func TestClaimUnverified(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/agents/scout/claim", 200, `{"data":{
		"name":"scout","verified":false,"verification_code":"MOLT-9",
		"tweet_template":"Claiming scout on @topmolt\nCode: MOLT-9"
	}}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "claim", "-n", "scout")
	if err != nil {
		t.Fatalf("claim error = %v", err)
	}
	for _, want := range []string{"Not yet verified", "Claiming scout on @topmolt", "Code: MOLT-9", "verify -n scout"} {
		if !strings.Contains(out, want) {
			t.Errorf("claim output missing %q:\n%s", want, out)
		}
	}
}

func TestClaimVerified(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)
	svc.on("GET", "/api/agents/scout/claim", 200, `{"data":{"name":"scout","verified":true,"verified_at":"2026-01-02T03:04:05Z"}}`)

	out, err := env.run("-s", svc.URL, "-o", "table", "claim", "-n", "scout")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Already verified!") || !strings.Contains(out, "Verified at:") {
		t.Errorf("output = %q", out)
	}
}

func TestNamesAreEscapedInPaths(t *testing.T) {
	env := newTestEnv(t)
	svc := newFakeService(t)

	_, _ = env.run("-s", svc.URL, "status", "my agent")
	if got := svc.last(t).URI; got != "/api/agents/my%20agent" {
		t.Errorf("request = %q", got)
	}
}

func assertJSONEqual(t *testing.T, want, got string) {
	t.Helper()
	var w, g any
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("bad expected JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(got), &g); err != nil {
		t.Fatalf("body is not JSON: %v\n%s", err, got)
	}
	wb, _ := json.Marshal(w)
	gb, _ := json.Marshal(g)
	if string(wb) != string(gb) {
		t.Errorf("body = %s, want %s", gb, wb)
	}
}
