package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnzrx/video-sub-creator/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded batch runs",
		Long:  "Without arguments, lists recent runs. With a run ID, lists that run's per-file outcomes.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunJobs(cmd, store, args[0])
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")

	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
			run.SourceDir,
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Run", "Started", "Duration", "Source", "Total", "OK", "Failed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight},
	))
	return nil
}

func printRunJobs(cmd *cobra.Command, store *history.Store, runID string) error {
	jobs, err := store.RunJobs(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintf(out, "No jobs recorded for run %s.\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(jobs))
	for _, job := range jobs {
		detail := job.ErrorMessage
		if job.Status == history.StatusCompleted {
			detail = filepath.Base(job.VTTPath) + ", " + filepath.Base(job.SRTPath)
		}
		rows = append(rows, []string{
			filepath.Base(job.SourcePath),
			job.Status,
			strconv.Itoa(job.SegmentCount),
			job.Elapsed.Round(time.Millisecond).String(),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Video", "Status", "Segments", "Elapsed", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}
