package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/domain"
)

// CommandStat is one executed command of a drain.
type CommandStat struct {
	Index    int
	Command  string
	Duration time.Duration
	Err      error
}

// Tracker collects per-command statistics through queue hooks.
type Tracker struct {
	stats []CommandStat
}

// Hooks returns the hooks that feed t.
func (t *Tracker) Hooks() domain.Hooks {
	return domain.Hooks{
		OnCommandFinish: func(e *domain.CommandEvent) {
			t.stats = append(t.stats, CommandStat{
				Index:    e.Index,
				Command:  e.Command,
				Duration: e.Duration,
				Err:      e.Err,
			})
		},
	}
}

// Stats returns the commands finished so far.
func (t *Tracker) Stats() []CommandStat {
	return t.stats
}

// Report formats a drain result as markdown.
func Report(res command.Result, stats []CommandStat) string {
	var sb strings.Builder
	sb.WriteString("# Command queue\n\n")
	fmt.Fprintf(&sb, "Drain `%s` executed **%d** command(s)", res.DrainID, res.Executed)
	switch {
	case res.Aborted:
		sb.WriteString(" and was **aborted**.\n\n")
	case len(res.Failed) > 0:
		fmt.Fprintf(&sb, " with **%d** failure(s).\n\n", len(res.Failed))
	default:
		sb.WriteString(".\n\n")
	}

	if len(stats) > 0 {
		sb.WriteString("| # | Command | Time | Result |\n")
		sb.WriteString("|---|---------|------|--------|\n")
		for _, s := range stats {
			outcome := "ok"
			if s.Err != nil {
				outcome = strings.ReplaceAll(s.Err.Error(), "|", "\\|")
			}
			fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", s.Index, s.Command, s.Duration, outcome)
		}
	}
	return sb.String()
}
