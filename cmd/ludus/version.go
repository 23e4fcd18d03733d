package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/ludus"
	"github.com/aretw0/ludus/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ludus",
	Run: func(cmd *cobra.Command, args []string) {
		version := strings.TrimSpace(ludus.Version)
		if term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner(cmd.OutOrStdout(), version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ludus version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
