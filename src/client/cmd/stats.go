package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/topmolt/cli/src/client/api"
	"github.com/topmolt/cli/src/client/output"
)

// statFlag binds one --flag to one AgentStats field
type statFlag struct {
	name     string
	register func(fs *pflag.FlagSet)
	apply    func(fs *pflag.FlagSet, s *api.AgentStats) error
}

func intStat(name, usage string, field func(*api.AgentStats) **int) statFlag {
	return statFlag{
		name:     name,
		register: func(fs *pflag.FlagSet) { fs.Int(name, 0, usage) },
		apply: func(fs *pflag.FlagSet, s *api.AgentStats) error {
			v, err := fs.GetInt(name)
			if err != nil {
				return err
			}
			if v < 0 {
				return fmt.Errorf("--%s must not be negative", name)
			}
			*field(s) = api.Int(v)
			return nil
		},
	}
}

func floatStat(name, usage string, max float64, field func(*api.AgentStats) **float64) statFlag {
	return statFlag{
		name:     name,
		register: func(fs *pflag.FlagSet) { fs.Float64(name, 0, usage) },
		apply: func(fs *pflag.FlagSet, s *api.AgentStats) error {
			v, err := fs.GetFloat64(name)
			if err != nil {
				return err
			}
			if v < 0 {
				return fmt.Errorf("--%s must not be negative", name)
			}
			if max > 0 && v > max {
				return fmt.Errorf("--%s must be between 0 and %g", name, max)
			}
			*field(s) = api.Float(v)
			return nil
		},
	}
}

func listStat(name, usage string, field func(*api.AgentStats) *[]string) statFlag {
	return statFlag{
		name:     name,
		register: func(fs *pflag.FlagSet) { fs.String(name, "", usage+" (comma-separated)") },
		apply: func(fs *pflag.FlagSet, s *api.AgentStats) error {
			v, err := fs.GetString(name)
			if err != nil {
				return err
			}
			*field(s) = splitList(v)
			return nil
		},
	}
}

func stringStat(name, usage string, field func(*api.AgentStats) **string) statFlag {
	return statFlag{
		name:     name,
		register: func(fs *pflag.FlagSet) { fs.String(name, "", usage) },
		apply: func(fs *pflag.FlagSet, s *api.AgentStats) error {
			v, err := fs.GetString(name)
			if err != nil {
				return err
			}
			*field(s) = api.String(strings.TrimSpace(v))
			return nil
		},
	}
}

// unbounded float
const noMax = 0

var statFlags = []statFlag{
	intStat("tasks-completed", "tasks completed", func(s *api.AgentStats) **int { return &s.TasksCompleted }),
	floatStat("hours-worked", "hours worked", noMax, func(s *api.AgentStats) **float64 { return &s.HoursWorked }),
	floatStat("accuracy-rate", "accuracy rate (0-100)", 100, func(s *api.AgentStats) **float64 { return &s.AccuracyRate }),
	floatStat("success-rate", "success rate (0-100)", 100, func(s *api.AgentStats) **float64 { return &s.SuccessRate }),
	intStat("active-users", "active users", func(s *api.AgentStats) **int { return &s.ActiveUsers }),

	stringStat("birthdate", "date of the earliest memory (YYYY-MM-DD)", func(s *api.AgentStats) **string { return &s.Birthdate }),
	intStat("skills-count", "number of skills", func(s *api.AgentStats) **int { return &s.SkillsCount }),
	listStat("skills", "skills", func(s *api.AgentStats) *[]string { return &s.Skills }),

	intStat("knowledge-items", "knowledge items", func(s *api.AgentStats) **int { return &s.KnowledgeItems }),
	intStat("memories-stored", "memories stored", func(s *api.AgentStats) **int { return &s.MemoriesStored }),

	intStat("messages-processed", "messages processed", func(s *api.AgentStats) **int { return &s.MessagesProcessed }),
	intStat("messages-sent", "messages sent", func(s *api.AgentStats) **int { return &s.MessagesSent }),
	intStat("emails-sent", "emails sent", func(s *api.AgentStats) **int { return &s.EmailsSent }),

	intStat("tool-calls", "tool calls", func(s *api.AgentStats) **int { return &s.ToolCalls }),
	intStat("tokens-processed", "tokens processed", func(s *api.AgentStats) **int { return &s.TokensProcessed }),
	intStat("files-managed", "files managed", func(s *api.AgentStats) **int { return &s.FilesManaged }),
	intStat("commits-pushed", "commits pushed", func(s *api.AgentStats) **int { return &s.CommitsPushed }),
	intStat("pull-requests", "pull requests", func(s *api.AgentStats) **int { return &s.PullRequests }),

	intStat("subagents-spawned", "sub-agents spawned", func(s *api.AgentStats) **int { return &s.SubagentsSpawned }),
	intStat("subagents-active", "sub-agents active", func(s *api.AgentStats) **int { return &s.SubagentsActive }),

	floatStat("avg-response-ms", "average response time in ms", noMax, func(s *api.AgentStats) **float64 { return &s.AvgResponseMs }),
	intStat("uptime-streak", "consecutive days online", func(s *api.AgentStats) **int { return &s.UptimeStreak }),
	floatStat("error-rate", "error rate (0-100)", 100, func(s *api.AgentStats) **float64 { return &s.ErrorRate }),

	intStat("integrations-count", "number of integrations", func(s *api.AgentStats) **int { return &s.IntegrationsCount }),
	listStat("integrations", "integrations", func(s *api.AgentStats) *[]string { return &s.Integrations }),
}

func addStatFlags(cmd *cobra.Command) {
	for _, f := range statFlags {
		f.register(cmd.Flags())
	}
}

// statsFromFlags fills AgentStats from the stat flags given on the command line only
func statsFromFlags(cmd *cobra.Command) (*api.AgentStats, error) {
	stats := &api.AgentStats{}
	fs := cmd.Flags()
	for _, f := range statFlags {
		if !fs.Changed(f.name) {
			continue
		}
		if err := f.apply(fs, stats); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// splitList turns "a, b,,c" into [a b c]
func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

var statsName string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report agent statistics",
	Long: `Report performance statistics for an agent without sending a heartbeat.
Only the stat flags you pass are sent.

Examples:
  ` + getBinaryName() + ` stats -n my-agent --tasks-completed 120 --accuracy-rate 97.5
  ` + getBinaryName() + ` stats -n my-agent --integrations github,slack`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := statsFromFlags(cmd)
		if err != nil {
			return err
		}
		if stats.IsEmpty() {
			return fmt.Errorf("no statistics given; pass at least one stat flag (see --help)")
		}

		ctx, cancel := requestContext(cmd)
		defer cancel()

		res, err := newClient().ReportStats(ctx, statsName, *stats)
		if err != nil {
			return fmt.Errorf("stats report failed: %w", err)
		}

		switch printer.Format() {
		case output.JSON:
			return printer.JSON(res)
		case output.Plain:
			if res.CreditScore != nil {
				printer.Printf("%s %g\n", statsName, *res.CreditScore)
			} else {
				printer.Println(statsName)
			}
		default:
			printer.Println()
			printer.Success("Statistics reported!")
			if res.CreditScore != nil {
				printer.Println()
				printer.Field("Score", printer.Accent(formatScore(*res.CreditScore)), 8)
			}
			printer.Println()
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsName, "name", "n", "", "agent name")
	_ = statsCmd.MarkFlagRequired("name")
	addStatFlags(statsCmd)
}
