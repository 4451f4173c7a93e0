// Package tui is an interactive leaderboard and search browser
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(output.Purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(output.Comment).
			Padding(0, 1)

	nameStyle  = lipgloss.NewStyle().Foreground(output.White)
	scoreStyle = lipgloss.NewStyle().Foreground(output.Cyan)
	checkStyle = lipgloss.NewStyle().Foreground(output.Green)
	helpStyle  = lipgloss.NewStyle().Foreground(output.Comment)
	errorStyle = lipgloss.NewStyle().Foreground(output.Red)
)

// Options tune the browser
type Options struct {
	// Timeout bounds each request; zero means none
	Timeout time.Duration
	// PageSize is the number of leaderboard rows per page (default 20)
	PageSize int
}

type view int

const (
	leaderboardView view = iota
	searchView
)

type model struct {
	ctx    context.Context
	client *api.Client
	opts   Options

	input    textinput.Model
	viewport viewport.Model
	ready    bool

	view    view
	query   string
	offset  int
	total   int
	agents  []api.Agent
	err     error
	loading bool
}

// agentsMsg carries one page of results back to Update
type agentsMsg struct {
	view   view
	offset int
	agents []api.Agent
	total  int
	err    error
}

func initialModel(ctx context.Context, client *api.Client, opts Options) model {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	ti := textinput.New()
	ti.Placeholder = "Search agents..."
	ti.Width = 50

	return model{
		ctx:     ctx,
		client:  client,
		opts:    opts,
		input:   ti,
		loading: true,
	}
}

func (m model) Init() tea.Cmd {
	return m.fetchLeaderboard(0)
}

func (m model) requestContext() (context.Context, context.CancelFunc) {
	if m.opts.Timeout > 0 {
		return context.WithTimeout(m.ctx, m.opts.Timeout)
	}
	return context.WithCancel(m.ctx)
}

func (m model) fetchLeaderboard(offset int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		res, err := m.client.GetLeaderboard(ctx, api.LeaderboardOptions{Limit: m.opts.PageSize, Offset: offset})
		if err != nil {
			return agentsMsg{view: leaderboardView, offset: offset, err: err}
		}
		return agentsMsg{view: leaderboardView, offset: offset, agents: res.Agents, total: res.Total}
	}
}

func (m model) search(query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()

		res, err := m.client.Search(ctx, query)
		if err != nil {
			return agentsMsg{view: searchView, err: err}
		}
		return agentsMsg{view: searchView, agents: res.Agents, total: res.Total}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.input.Focused() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter":
				q := strings.TrimSpace(m.input.Value())
				m.input.Blur()
				if q == "" {
					return m, nil
				}
				m.query, m.view, m.loading = q, searchView, true
				return m, m.search(q)
			case "esc":
				m.input.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.input.SetValue("")
			cmd := m.input.Focus()
			return m, cmd
		case "esc":
			if m.view == searchView {
				m.view, m.query, m.loading = leaderboardView, "", true
				cmd := m.fetchLeaderboard(m.offset)
				return m, cmd
			}
		case "r":
			m.loading = true
			if m.view == searchView {
				return m, m.search(m.query)
			}
			return m, m.fetchLeaderboard(m.offset)
		case "n", "right":
			if m.view == leaderboardView && m.offset+m.opts.PageSize < m.total {
				m.loading = true
				return m, m.fetchLeaderboard(m.offset + m.opts.PageSize)
			}
		case "p", "left":
			if m.view == leaderboardView && m.offset > 0 {
				m.loading = true
				return m, m.fetchLeaderboard(max(0, m.offset-m.opts.PageSize))
			}
		}

	case tea.WindowSizeMsg:
		m.viewport = viewport.New(msg.Width, max(1, msg.Height-8))
		m.ready = true
		m.viewport.SetContent(m.renderAgents())

	case agentsMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.agents, m.total = msg.agents, msg.total
			if msg.view == leaderboardView {
				m.offset = msg.offset
			}
		}
		m.viewport.SetContent(m.renderAgents())
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) renderAgents() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if len(m.agents) == 0 {
		return helpStyle.Render("No agents found")
	}

	var sb strings.Builder
	for i, a := range m.agents {
		rank := i + 1
		if m.view == leaderboardView {
			rank += m.offset
		}
		if a.Rank != nil && a.Rank.Global > 0 {
			rank = a.Rank.Global
		}

		sb.WriteString(lipgloss.NewStyle().Foreground(output.RankColor(rank)).Render(fmt.Sprintf("%-6s", fmt.Sprintf("#%d", rank))))
		sb.WriteString(scoreStyle.Render(fmt.Sprintf("%-8s", fmt.Sprint(a.CreditScore))))
		sb.WriteString(nameStyle.Render(a.Title()))
		if a.Verified {
			sb.WriteString(checkStyle.Render(" ✓"))
		}
		if c := a.Category.String(); c != "" {
			sb.WriteString(helpStyle.Render("  " + c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m model) title() string {
	if m.view == searchView {
		return fmt.Sprintf("Search: %q", m.query)
	}
	if m.total > 0 {
		last := min(m.offset+len(m.agents), m.total)
		return fmt.Sprintf("Leaderboard  %d-%d of %d", m.offset+1, last, m.total)
	}
	return "Leaderboard"
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Topmolt " + m.title()))
	sb.WriteString("\n\n")

	if m.input.Focused() {
		sb.WriteString(inputStyle.Render(m.input.View()))
		sb.WriteString("\n\n")
	}

	switch {
	case m.loading:
		sb.WriteString(helpStyle.Render("Loading..."))
	case m.ready:
		sb.WriteString(m.viewport.View())
	default:
		sb.WriteString(m.renderAgents())
	}

	sb.WriteString("\n")
	if m.input.Focused() {
		sb.WriteString(helpStyle.Render("Enter: search • Esc: cancel"))
	} else {
		sb.WriteString(helpStyle.Render("/: search • n/p: page • r: refresh • Esc: leaderboard • q: quit"))
	}

	return sb.String()
}

// Run starts the browser and blocks until the user quits or ctx is done
func Run(ctx context.Context, client *api.Client, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(initialModel(ctx, client, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
