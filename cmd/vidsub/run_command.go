package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dnzrx/video-sub-creator/internal/batch"
	"github.com/dnzrx/video-sub-creator/internal/config"
	"github.com/dnzrx/video-sub-creator/internal/history"
	"github.com/dnzrx/video-sub-creator/internal/logging"
	"github.com/dnzrx/video-sub-creator/internal/media/pcm"
	"github.com/dnzrx/video-sub-creator/internal/transcribe"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		sourceDir string
		outputDir string
		workers   int
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate subtitles for every video in the source directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				cfg.Paths.SourceDir, err = config.ExpandPath(sourceDir)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("output") {
				cfg.Paths.OutputDir, err = config.ExpandPath(outputDir)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("workers") {
				if workers < 0 {
					return fmt.Errorf("workers must be zero or positive, got %d", workers)
				}
				cfg.Batch.Workers = workers
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Writer: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			extractor := pcm.NewExtractor(cfg.FFmpeg.Binary)
			var engine transcribe.Engine = transcribe.NewWhisperCLI(transcribe.Options{
				Binary:   cfg.Whisper.Binary,
				Model:    cfg.Whisper.Model,
				Language: cfg.Whisper.Language,
				WorkDir:  cfg.Whisper.WorkDir,
			}, logger)
			if cfg.Whisper.SerializeInference {
				engine = transcribe.Serialized(engine)
			}

			coordinator := batch.NewCoordinator(batch.Options{
				SourceDir:       cfg.Paths.SourceDir,
				OutputDir:       cfg.Paths.OutputDir,
				Extensions:      cfg.Batch.Extensions,
				CaseInsensitive: cfg.Batch.CaseInsensitiveExtensions,
				Workers:         cfg.Batch.Workers,
			}, extractor, engine, logger)

			summary, err := coordinator.Run(ctx)
			if err != nil {
				return err
			}

			if !noHistory {
				recordHistory(ctx, cfg, summary, logger)
			}

			printSummary(cmd, summary)
			if summary.Failed() > 0 {
				return fmt.Errorf("%d of %d videos failed", summary.Failed(), summary.Total())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceDir, "source", "s", "", "Directory scanned for video files (overrides config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory that receives subtitle files (overrides config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent jobs; 0 uses the host's available parallelism")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Skip recording this run in the history database")

	return cmd
}

// recordHistory is best effort: a broken history database should never fail a
// run that already produced its subtitle files.
func recordHistory(ctx context.Context, cfg *config.Config, summary *batch.Summary, logger *slog.Logger) {
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logger.Warn("history unavailable", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.RecordRun(ctx, summary); err != nil {
		logger.Warn("history write failed", logging.Error(err))
	}
}

func printSummary(cmd *cobra.Command, summary *batch.Summary) {
	out := cmd.OutOrStdout()
	if summary.Total() == 0 {
		fmt.Fprintln(out, "No videos found.")
		return
	}

	rows := make([][]string, 0, summary.Total())
	for _, result := range summary.Results {
		status := "ok"
		detail := filepath.Base(result.VTTPath) + ", " + filepath.Base(result.SRTPath)
		if !result.Succeeded() {
			status = "failed"
			detail = result.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(result.Source),
			status,
			strconv.Itoa(result.SegmentCount),
			result.Elapsed.Round(time.Millisecond).String(),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Video", "Status", "Segments", "Elapsed", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%d succeeded, %d failed (run %s)\n",
		summary.Succeeded(), summary.Failed(), summary.RunID)
}
