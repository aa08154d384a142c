package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/axiom-lang/axiom/replay"
	"github.com/axiom-lang/axiom/runlog"
	runlogmongo "github.com/axiom-lang/axiom/runlog/mongo"
)

var (
	runlogRunID string
	runlogLimit int
	runlogAfter string
)

var runlogCmd = &cobra.Command{
	Use:   "runlog",
	Short: "Archive and inspect replay logs independently of a single run",
}

var runlogArchiveCmd = &cobra.Command{
	Use:   "archive <replay-file>",
	Short: "Archive a replay log's events under a run id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		log, err := replay.FromText(string(text))
		if err != nil {
			return err
		}

		store, err := openRunlogStore(cmd.Context())
		if err != nil {
			return err
		}

		runID := runlogRunID
		if runID == "" {
			runID = uuid.NewString()
		}

		lines := splitReplayLines(log.ToText())
		for i, line := range lines {
			ev := &runlog.Event{
				RunID: runID,
				Seq:   i,
				Kind:  eventKind(log.Events[i]),
				Line:  line,
			}
			if err := store.Append(cmd.Context(), ev); err != nil {
				return fmt.Errorf("archive event %d: %w", i, err)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "run_id=%s\nevents=%d\n", runID, len(lines))
		return nil
	},
}

var runlogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived events for a run id",
	RunE: func(cmd *cobra.Command, args []string) error {
		if runlogRunID == "" {
			return fmt.Errorf("--run-id is required")
		}
		store, err := openRunlogStore(cmd.Context())
		if err != nil {
			return err
		}
		limit := runlogLimit
		if limit <= 0 {
			limit = 100
		}
		page, err := store.List(cmd.Context(), runlogRunID, runlogAfter, limit)
		if err != nil {
			return err
		}
		for _, e := range page.Events {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\tseq=%d\t%s\t%s\n", e.ID, e.Seq, e.Kind, e.Line)
		}
		if page.NextCursor != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "next_cursor=%s\n", page.NextCursor)
		}
		return nil
	},
}

func init() {
	runlogCmd.PersistentFlags().StringVar(&runlogRunID, "run-id", "", "run id to archive under or list")
	runlogListCmd.Flags().IntVar(&runlogLimit, "limit", 100, "maximum events to return")
	runlogListCmd.Flags().StringVar(&runlogAfter, "after", "", "cursor returned by a previous list call")

	runlogCmd.AddCommand(runlogArchiveCmd)
	runlogCmd.AddCommand(runlogListCmd)
}

// openRunlogStore wires a MongoDB-backed store when cfg.MongoURI is set,
// otherwise falls back to an in-memory store scoped to this process.
func openRunlogStore(ctx context.Context) (runlog.Store, error) {
	if cfg == nil || cfg.MongoURI == "" {
		return runlog.NewMemoryStore(), nil
	}

	clientOpts := options.Client().ApplyURI(cfg.MongoURI)
	mc, err := mongodriver.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	database := cfg.MongoDatabase
	if database == "" {
		database = "axiom"
	}
	client, err := runlogmongo.New(runlogmongo.Options{Client: mc, Database: database})
	if err != nil {
		return nil, fmt.Errorf("build mongo client: %w", err)
	}
	if err := client.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return runlogmongo.NewStore(client)
}

// splitReplayLines splits a replay log's canonical text into its one-line-
// per-event records, dropping the trailing blank line produced by ToText's
// trailing newline.
func splitReplayLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func eventKind(e replay.Event) string {
	switch e.(type) {
	case replay.PrintEvent:
		return "PRINT"
	case replay.ToolCallEvent:
		return "TOOL"
	case replay.RandomEvent:
		return "RANDOM"
	case replay.TimeEvent:
		return "TIME"
	default:
		return "UNKNOWN"
	}
}
