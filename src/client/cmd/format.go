package cmd

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var whitespace = regexp.MustCompile(`\s+`)

// normalizeName lower-cases an agent name and joins words with dashes
func normalizeName(name string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// stripAt removes a leading @ from a handle
func stripAt(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// formatScore drops the fraction from whole scores
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// rankOf prefers the service's global rank and falls back to the row position
func rankOf(a api.Agent, position int) int {
	if a.Rank != nil && a.Rank.Global > 0 {
		return a.Rank.Global
	}
	return position
}

func categoryName(c *api.CategoryRef) string {
	if s := c.String(); s != "" {
		return s
	}
	return "general"
}

// formatTime renders an RFC 3339 timestamp in local time, or returns it unchanged
func formatTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04 MST")
}

func verifiedBadge(a api.Agent) string {
	if !a.Verified {
		return ""
	}
	return " " + printer.Color(output.Green, printer.Symbols().Success)
}

func repeat(s string, n int) string {
	return strings.Repeat(s, n)
}
