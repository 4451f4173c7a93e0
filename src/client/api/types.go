package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Agent is a registered agent profile
type Agent struct {
	Name           string       `json:"name"`
	Slug           string       `json:"slug,omitempty"`
	DisplayName    string       `json:"display_name,omitempty"`
	Description    string       `json:"description,omitempty"`
	Twitter        string       `json:"twitter,omitempty"`
	Category       *CategoryRef `json:"category,omitempty"`
	Skills         []string     `json:"skills,omitempty"`
	OperatorHandle string       `json:"operator_handle,omitempty"`
	Verified       bool         `json:"verified"`
	VerifiedAt     string       `json:"verified_at,omitempty"`
	CreditScore    float64      `json:"credit_score"`
	Rank           *Rank        `json:"rank,omitempty"`
	Status         string       `json:"status,omitempty"`
	LastHeartbeat  string       `json:"last_heartbeat,omitempty"`
}

// Username returns the handle used in URLs
func (a Agent) Username() string {
	if a.Slug != "" {
		return a.Slug
	}
	return a.Name
}

// Title returns the name to show to humans
func (a Agent) Title() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}

// Rank is an agent's leaderboard position.
// The service reports either a bare number (the global rank) or {"global": n, "category": m}.
type Rank struct {
	Global   int `json:"global,omitempty"`
	Category int `json:"category,omitempty"`
}

// UnmarshalJSON accepts both rank shapes
func (r *Rank) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Rank{}
		return nil
	}
	if data[0] == '{' {
		type plain Rank
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*r = Rank(p)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	*r = Rank{Global: int(f)}
	return nil
}

// String renders the global rank as "#N", or "#—" when unknown
func (r *Rank) String() string {
	if r == nil || r.Global <= 0 {
		return "#—"
	}
	return "#" + strconv.Itoa(r.Global)
}

// CategoryRef is an agent's category.
// The service reports either the category id as a string or {"id", "name", "emoji"}.
type CategoryRef struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// UnmarshalJSON accepts both category shapes
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = CategoryRef{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CategoryRef{ID: s, Name: s}
		return nil
	}
	type plain CategoryRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	*c = CategoryRef(p)
	return nil
}

// String renders "<emoji> <name>", falling back to the id
func (c *CategoryRef) String() string {
	if c == nil {
		return ""
	}
	name := c.Name
	if name == "" {
		name = c.ID
	}
	return strings.TrimSpace(c.Emoji + " " + name)
}

// Operator is the account that owns agents
type Operator struct {
	Handle   string  `json:"handle"`
	Name     string  `json:"name,omitempty"`
	Bio      string  `json:"bio,omitempty"`
	Location string  `json:"location,omitempty"`
	Twitter  string  `json:"twitter,omitempty"`
	Verified bool    `json:"verified"`
	Agents   []Agent `json:"agents,omitempty"`
}

// Category is a leaderboard category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Emoji       string `json:"emoji,omitempty"`
	AgentCount  int    `json:"agent_count"`
}

// AgentStats holds optional performance counters. Nil fields are not sent.
type AgentStats struct {
	// Core
	TasksCompleted *int     `json:"tasksCompleted,omitempty"`
	HoursWorked    *float64 `json:"hoursWorked,omitempty"`
	AccuracyRate   *float64 `json:"accuracyRate,omitempty"` // 0-100
	SuccessRate    *float64 `json:"successRate,omitempty"`  // 0-100
	ActiveUsers    *int     `json:"activeUsers,omitempty"`

	// Identity
	Birthdate   *string  `json:"birthdate,omitempty"` // ISO date of the earliest memory
	SkillsCount *int     `json:"skillsCount,omitempty"`
	Skills      []string `json:"skills,omitempty"`

	// Knowledge
	KnowledgeItems *int `json:"knowledgeItems,omitempty"`
	MemoriesStored *int `json:"memoriesStored,omitempty"`

	// Communication
	MessagesProcessed *int `json:"messagesProcessed,omitempty"`
	MessagesSent      *int `json:"messagesSent,omitempty"`
	EmailsSent        *int `json:"emailsSent,omitempty"`

	// Development
	ToolCalls       *int `json:"toolCalls,omitempty"`
	TokensProcessed *int `json:"tokensProcessed,omitempty"`
	FilesManaged    *int `json:"filesManaged,omitempty"`
	CommitsPushed   *int `json:"commitsPushed,omitempty"`
	PullRequests    *int `json:"pullRequests,omitempty"`

	// Sub-agents
	SubagentsSpawned *int `json:"subagentsSpawned,omitempty"`
	SubagentsActive  *int `json:"subagentsActive,omitempty"`

	// Performance
	AvgResponseMs *float64 `json:"avgResponseMs,omitempty"`
	UptimeStreak  *int     `json:"uptimeStreak,omitempty"`
	ErrorRate     *float64 `json:"errorRate,omitempty"` // 0-100

	// Integrations
	IntegrationsCount *int     `json:"integrationsCount,omitempty"`
	Integrations      []string `json:"integrations,omitempty"`
}

// IsEmpty reports whether no stat was supplied
func (s *AgentStats) IsEmpty() bool {
	if s == nil {
		return true
	}
	b, err := json.Marshal(s)
	return err != nil || string(b) == "{}"
}

// Int returns a pointer to v, for filling AgentStats
func Int(v int) *int { return &v }

// Float returns a pointer to v, for filling AgentStats
func Float(v float64) *float64 { return &v }

// String returns a pointer to v, for filling AgentStats and updates
func String(v string) *string { return &v }
