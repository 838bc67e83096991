package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mediasort/internal/ipc"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect organize run history",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsClearCommand(ctx))
	runsCmd.AddCommand(newRunsHealthCommand(ctx))

	return runsCmd
}

func newRunsHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the run history database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				health, err := client.DatabaseHealth()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, health)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, renderStatusLine("Database", statusInfo, health.DBPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Exists", boolKind(health.DatabaseExists), yesNo(health.DatabaseExists), colorize))
				fmt.Fprintln(out, renderStatusLine("Readable", boolKind(health.DatabaseReadable), yesNo(health.DatabaseReadable), colorize))
				fmt.Fprintln(out, renderStatusLine("Schema", statusInfo, strconv.Itoa(health.SchemaVersion), colorize))
				fmt.Fprintln(out, renderStatusLine("Runs", statusInfo, strconv.Itoa(health.TotalRuns), colorize))
				if health.Error != "" {
					fmt.Fprintln(out, renderStatusLine("Error", statusError, health.Error, colorize))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func boolKind(ok bool) statusKind {
	if ok {
		return statusOK
	}
	return statusError
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("invalid limit %d", limit)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RunList(limit)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				if len(resp.Runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}

				headers := []string{"ID", "Started", "Moved", "Copied", "Renamed", "Skipped", "Failed", "Total"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
				rows := make([][]string, 0, len(resp.Runs))
				for _, run := range resp.Runs {
					rows = append(rows, []string{
						run.ID,
						run.StartedAt,
						strconv.Itoa(run.Moved),
						strconv.Itoa(run.Copied),
						strconv.Itoa(run.Renamed),
						strconv.Itoa(run.Skipped),
						strconv.Itoa(run.Failed),
						strconv.Itoa(run.Total),
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of runs to list (0 lists all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a run with its per-file dispositions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RunDescribe(args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				run := resp.Run
				fmt.Fprintf(out, "Run %s\n", run.ID)
				fmt.Fprintln(out, renderStatusLine("Input", statusInfo, run.InputDir, colorize))
				fmt.Fprintln(out, renderStatusLine("Output", statusInfo, run.OutputDir, colorize))
				fmt.Fprintln(out, renderStatusLine("Started", statusInfo, run.StartedAt, colorize))
				fmt.Fprintln(out, renderStatusLine("Finished", statusInfo, run.FinishedAt, colorize))
				fmt.Fprintln(out, renderCountsLine(run, colorize))

				if len(resp.Entries) == 0 {
					return nil
				}
				headers := []string{"Source", "Destination", "Outcome", "Timestamp", "Reason"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
				rows := make([][]string, 0, len(resp.Entries))
				for _, entry := range resp.Entries {
					rows = append(rows, []string{
						entry.Source,
						entry.Destination,
						formatOutcomeLabel(entry.Outcome),
						entry.TimestampSource,
						entry.Reason,
					})
				}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func newRunsClearCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all recorded run history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RunClear()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", resp.Removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}
