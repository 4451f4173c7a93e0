package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// LeaderboardOptions filter and page the leaderboard. Zero values are not sent.
type LeaderboardOptions struct {
	Category string
	Limit    int
	Offset   int
}

// LeaderboardResult is one page of ranked agents
type LeaderboardResult struct {
	Agents []Agent `json:"agents"`
	Total  int     `json:"total"`
}

// query keeps category, limit, offset in that order
func (o LeaderboardOptions) query() string {
	var parts []string
	if o.Category != "" {
		parts = append(parts, "category="+url.QueryEscape(o.Category))
	}
	if o.Limit != 0 {
		parts = append(parts, "limit="+strconv.Itoa(o.Limit))
	}
	if o.Offset != 0 {
		parts = append(parts, "offset="+strconv.Itoa(o.Offset))
	}
	return strings.Join(parts, "&")
}

// GetLeaderboard returns ranked agents
func (c *Client) GetLeaderboard(ctx context.Context, opts LeaderboardOptions) (*LeaderboardResult, error) {
	path := "/api/leaderboard"
	if q := opts.query(); q != "" {
		path += "?" + q
	}

	var resp struct {
		Data  []Agent `json:"data"`
		Total *int    `json:"total"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	result := &LeaderboardResult{Agents: resp.Data}
	if result.Agents == nil {
		result.Agents = []Agent{}
	}
	if resp.Total != nil {
		result.Total = *resp.Total
	}
	return result, nil
}

// SearchResult holds agents matching a query
type SearchResult struct {
	Query  string  `json:"query"`
	Total  int     `json:"total"`
	Agents []Agent `json:"agents"`
}

// Search finds agents matching query
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)

	var resp struct {
		Query string  `json:"query"`
		Total int     `json:"total"`
		Data  []Agent `json:"data"`
	}
	if err := c.get(ctx, "/api/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	result := &SearchResult{Query: resp.Query, Total: resp.Total, Agents: resp.Data}
	if result.Query == "" {
		result.Query = query
	}
	if result.Agents == nil {
		result.Agents = []Agent{}
	}
	return result, nil
}

// GetCategories returns all categories
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Data []Category `json:"data"`
	}
	if err := c.get(ctx, "/api/categories", &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return []Category{}, nil
	}
	return resp.Data, nil
}
