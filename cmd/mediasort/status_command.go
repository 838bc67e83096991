package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				daemonKind := statusError
				daemonMessage := "not running"
				if status.Running {
					daemonKind = statusOK
					daemonMessage = fmt.Sprintf("running (pid %d)", status.PID)
				}
				fmt.Fprintln(out, renderStatusLine("Daemon", daemonKind, daemonMessage, colorize))
				fmt.Fprintln(out, renderStatusLine("Organizing", statusInfo, yesNo(status.Organizing), colorize))
				fmt.Fprintln(out, renderStatusLine("Input", statusInfo, status.InputDir, colorize))
				fmt.Fprintln(out, renderStatusLine("Output", statusInfo, status.OutputDir, colorize))
				fmt.Fprintln(out, renderStatusLine("Database", statusInfo, status.RunsDBPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Lock", statusInfo, status.LockPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Runs", statusInfo, fmt.Sprintf("%d recorded", status.TotalRuns), colorize))
				if status.LastRun != nil {
					fmt.Fprintln(out, renderCountsLine(*status.LastRun, colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
