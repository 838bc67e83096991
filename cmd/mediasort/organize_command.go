package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/ipc"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var inputDir string
	var outputDir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Trigger an organize pass through the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Organize(ipc.OrganizeRequest{
					InputDir:  inputDir,
					OutputDir: outputDir,
				})
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				run := resp.Run
				fmt.Fprintf(out, "Organized %s into %s\n", run.InputDir, run.OutputDir)
				fmt.Fprintln(out, renderStatusLine("Run", statusInfo, run.ID, colorize))
				fmt.Fprintln(out, renderCountsLine(run, colorize))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&inputDir, "input", "", "Override the configured input directory")
	cmd.Flags().StringVar(&outputDir, "output", "", "Override the configured output directory")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON output")
	return cmd
}

func renderCountsLine(run ipc.Run, colorize bool) string {
	kind := statusOK
	if run.Failed > 0 {
		kind = statusWarn
	}
	message := fmt.Sprintf("moved %d, copied %d, renamed %d, skipped %d, failed %d (total %d)",
		run.Moved, run.Copied, run.Renamed, run.Skipped, run.Failed, run.Total)
	return renderStatusLine("Files", kind, message, colorize)
}
