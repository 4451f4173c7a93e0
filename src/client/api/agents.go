package api

import (
	"context"
	"net/url"
)

func agentPath(name string, suffix ...string) string {
	p := "/api/agents/" + url.PathEscape(name)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// ====== REGISTRATION ======

// RegisterOptions are the fields sent when registering an agent
type RegisterOptions struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name,omitempty"`
	Description    string   `json:"description,omitempty"`
	Twitter        string   `json:"twitter,omitempty"`
	Category       string   `json:"category,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	OperatorHandle string   `json:"operator_handle,omitempty"`
}

// RegisterResult is the flattened registration response
type RegisterResult struct {
	APIKey           string `json:"api_key"`
	VerificationCode string `json:"verification_code,omitempty"`
	ClaimURL         string `json:"claim_url,omitempty"`
	Username         string `json:"username"`
	DisplayName      string `json:"display_name,omitempty"`
	Agent            Agent  `json:"agent"`
}

type registerResponse struct {
	APIKey           string `json:"api_key"`
	VerificationCode string `json:"verification_code"`
	ClaimURL         string `json:"claim_url"`
	Data             struct {
		APIKey           string       `json:"api_key"`
		VerificationCode string       `json:"verification_code"`
		ClaimURL         string       `json:"claim_url"`
		Username         string       `json:"username"`
		DisplayName      string       `json:"display_name"`
		Category         *CategoryRef `json:"category"`
		Verified         bool         `json:"verified"`
	} `json:"data"`
}

// Register registers a new agent on the leaderboard
func (c *Client) Register(ctx context.Context, opts RegisterOptions) (*RegisterResult, error) {
	var resp registerResponse
	if err := c.post(ctx, "/api/agents/register", opts, &resp); err != nil {
		return nil, err
	}
	return normalizeRegister(resp, opts), nil
}

func normalizeRegister(resp registerResponse, opts RegisterOptions) *RegisterResult {
	d := resp.Data
	username := firstNonEmpty(d.Username, opts.Name)
	displayName := firstNonEmpty(d.DisplayName, opts.DisplayName)
	res := &RegisterResult{
		APIKey:           firstNonEmpty(resp.APIKey, d.APIKey),
		VerificationCode: firstNonEmpty(resp.VerificationCode, d.VerificationCode),
		ClaimURL:         firstNonEmpty(resp.ClaimURL, d.ClaimURL),
		Username:         username,
		DisplayName:      displayName,
		Agent: Agent{
			Name:        username,
			DisplayName: displayName,
			Category:    d.Category,
			Verified:    d.Verified,
		},
	}
	return res
}

// ====== VERIFICATION ======

// VerifyResult reports whether the verification tweet was accepted
type VerifyResult struct {
	Verified   bool   `json:"verified"`
	VerifiedAt string `json:"verified_at,omitempty"`
}

type verifyRequest struct {
	TweetURL         string `json:"tweet_url"`
	VerificationCode string `json:"verification_code,omitempty"`
}

// Verify asks the service to check the verification tweet at tweetURL.
// code may be empty.
func (c *Client) Verify(ctx context.Context, name, tweetURL, code string) (*VerifyResult, error) {
	var resp struct {
		Data VerifyResult `json:"data"`
	}
	body := verifyRequest{TweetURL: tweetURL, VerificationCode: code}
	if err := c.post(ctx, agentPath(name, "verify"), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ClaimInfo is what an operator needs to claim an agent
type ClaimInfo struct {
	Name             string `json:"name"`
	Username         string `json:"username,omitempty"`
	DisplayName      string `json:"display_name,omitempty"`
	Verified         bool   `json:"verified"`
	VerifiedAt       string `json:"verified_at,omitempty"`
	VerificationCode string `json:"verification_code,omitempty"`
	TweetTemplate    string `json:"tweet_template,omitempty"`
	Twitter          string `json:"twitter,omitempty"`
}

// ClaimResponse is passed through from the service unchanged
type ClaimResponse struct {
	Data ClaimInfo `json:"data"`
}

// Claim fetches the claim instructions for an agent
func (c *Client) Claim(ctx context.Context, name string) (*ClaimResponse, error) {
	var resp ClaimResponse
	if err := c.get(ctx, agentPath(name, "claim"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ====== HEARTBEAT & STATS ======

// Agent statuses accepted by Heartbeat
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
	StatusBusy    = "busy"
)

// HeartbeatOptions describe one heartbeat. Name selects the agent and is not sent in the body.
type HeartbeatOptions struct {
	Name     string
	Status   string
	Stats    *AgentStats
	Metadata map[string]any
}

type heartbeatRequest struct {
	Status   string         `json:"status,omitempty"`
	Stats    *AgentStats    `json:"stats,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// HeartbeatResult carries the score computed after the heartbeat
type HeartbeatResult struct {
	CreditScore float64 `json:"credit_score"`
}

// Heartbeat reports the agent as alive, optionally with stats
func (c *Client) Heartbeat(ctx context.Context, opts HeartbeatOptions) (*HeartbeatResult, error) {
	body := heartbeatRequest{Status: opts.Status, Metadata: opts.Metadata}
	if !opts.Stats.IsEmpty() {
		body.Stats = opts.Stats
	}
	var resp struct {
		Data HeartbeatResult `json:"data"`
	}
	if err := c.post(ctx, agentPath(opts.Name, "heartbeat"), body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// StatsResult is passed through from the service unchanged
type StatsResult struct {
	Success     bool     `json:"success"`
	CreditScore *float64 `json:"creditScore,omitempty"`
}

// ReportStats reports statistics outside of a heartbeat
func (c *Client) ReportStats(ctx context.Context, name string, stats AgentStats) (*StatsResult, error) {
	var resp StatsResult
	if err := c.post(ctx, agentPath(name, "stats"), stats, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ====== PROFILE ======

// GetAgent returns the agent, or nil if it cannot be fetched for any reason.
// A missing agent and a failed request look the same to the caller.
func (c *Client) GetAgent(ctx context.Context, name string) *Agent {
	var resp struct {
		Data *Agent `json:"data"`
	}
	if err := c.get(ctx, agentPath(name), &resp); err != nil {
		c.logger.Debug("get agent failed", "name", name, "error", err)
		return nil
	}
	return resp.Data
}

// AgentUpdate holds the fields to change. Nil fields are left as they are.
type AgentUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Twitter     *string `json:"twitter,omitempty"`
	Category    *string `json:"category,omitempty"`
	// Skills replaces the skill list; a non-nil empty slice clears it
	Skills *[]string `json:"skills,omitempty"`
}

// UpdateAgent changes an agent's profile
func (c *Client) UpdateAgent(ctx context.Context, name string, updates AgentUpdate) (*Agent, error) {
	var agent Agent
	if err := c.put(ctx, agentPath(name), updates, &agent); err != nil {
		return nil, err
	}
	return &agent, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
