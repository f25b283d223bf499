package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"depthsync/internal/deps"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that external tools are installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			for _, status := range statuses {
				switch {
				case status.Available:
					fmt.Fprintln(out, renderStatusLine(status.Name, statusOK, status.Path, colorize))
				case status.Optional:
					fmt.Fprintln(out, renderStatusLine(status.Name, statusWarn, status.Detail, colorize))
				default:
					fmt.Fprintln(out, renderStatusLine(status.Name, statusError, status.Detail+"; "+status.Description, colorize))
				}
			}
			if missing := deps.Missing(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, m := range missing {
					names = append(names, m.Name)
				}
				return fmt.Errorf("missing required tools: %s", strings.Join(names, ", "))
			}
			return nil
		},
	}
}
