package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/ludus/internal/config"
	"github.com/aretw0/ludus/internal/presentation/tui"
	"github.com/aretw0/ludus/pkg/command"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Run the configured command script headless",
	Long: `Builds every entry of the configuration script, runs them through the
command queue with a simulated clock and prints a report of the drain.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, _ := cmd.Flags().GetDuration("dt")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		style, _ := cmd.Flags().GetString("style")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		var tracker tui.Tracker
		a, err := newApp(cfg, logger, nil, tracker.Hooks())
		if err != nil {
			return err
		}
		defer a.close()

		res, err := runScript(ctx, a, cfg.Script, dt)
		if err != nil {
			return err
		}

		if style == "" && !term.IsTerminal(int(os.Stdout.Fd())) {
			style = "notty"
		}
		width := 0
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
		render, err := tui.NewRenderer(style, width)
		if err != nil {
			return err
		}
		out, err := render(tui.Report(res, tracker.Stats()))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return res.Err()
	},
}

// runScript enqueues script and steps the host by dt until
// the drain completes or ctx is done.
func runScript(ctx context.Context, a *app, script []config.ScriptEntry, dt time.Duration) (command.Result, error) {
	if err := a.enqueueScript(script); err != nil {
		return command.Result{}, err
	}

	var (
		res  command.Result
		done bool
	)
	if err := a.host.Queue().Run(func(r command.Result) {
		res, done = r, true
	}); err != nil {
		return command.Result{}, err
	}
	for !done {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("command script: %w", err)
		}
		a.host.Step(dt)
	}
	return res, nil
}

func init() {
	rootCmd.AddCommand(commandsCmd)

	commandsCmd.Flags().Duration("dt", 100*time.Millisecond, "Simulated time per tick")
	commandsCmd.Flags().Duration("timeout", time.Minute, "Wall-clock limit for the script")
	commandsCmd.Flags().String("style", "", "Glamour style for the report (auto-detected when empty)")
}
