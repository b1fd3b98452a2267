// Copyright 2025 Coldbrook Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/coldbrook/projscout"
	"github.com/coldbrook/projscout/ai"
)

const snippetLength = 160

func main() {
	// Optional .env overrides for the embedding flags below
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "projscout",
		Usage: "Semantic search over scraped research project records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the record file and embedding cache",
				Value:   "./data",
				EnvVars: []string{"PROJSCOUT_DATA_DIR"},
			},
			&cli.StringFlag{
				Name:    "embedding-host",
				Usage:   "Embedding service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"PROJSCOUT_EMBEDDING_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "all-minilm",
				EnvVars: []string{"PROJSCOUT_EMBEDDING_MODEL"},
			},
			&cli.IntFlag{
				Name:    "embedding-dimension",
				Usage:   "Expected embedding vector width",
				Value:   384,
				EnvVars: []string{"PROJSCOUT_EMBEDDING_DIMENSION"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Rank project records against a query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "build-index",
				Usage:  "Recompute all embeddings and persist the cache",
				Action: buildIndexCommand,
			},
			{
				Name:   "stats",
				Usage:  "Report record count, index state, and artifact locations",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newService(c *cli.Context) (*projscout.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("embedding-dimension")),
	)

	return projscout.NewService(c.String("data-dir"), projscout.WithAIConfig(aiConfig))
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := svc.EnsureIndexReady(ctx); err != nil {
		return fmt.Errorf("failed to prepare index: %w", err)
	}

	results, err := svc.Search(ctx, query, c.Int("top-k"))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No matching projects found")
		return nil
	}

	for i, hit := range results {
		fmt.Printf("%d. [%.3f] %s\n", i+1, hit.Score, hit.Record.Title)
		if hit.Record.URL != "" {
			fmt.Printf("   %s\n", hit.Record.URL)
		}
		if text := snippet(hit.Record.Summary, snippetLength); text != "" {
			fmt.Printf("   %s\n", text)
		}
	}
	return nil
}

func buildIndexCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	if err := svc.LoadRecords(); err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	if err := svc.RebuildIndex(context.Background()); err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Printf("Indexed %d records, cache written to %s\n", svc.RecordCount(), svc.CachePath())
	return nil
}

func statsCommand(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	if err := svc.LoadRecords(); err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	fmt.Printf("Records:     %d\n", svc.RecordCount())
	fmt.Printf("Index state: %s\n", svc.State())
	fmt.Printf("Record file: %s\n", svc.RecordPath())
	fmt.Printf("Cache file:  %s\n", svc.CachePath())
	return nil
}

// snippet shortens text for single-line result display, cutting at a word
// boundary where possible.
func snippet(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= maxLen {
		return text
	}
	cut := text[:maxLen]
	if i := strings.LastIndex(cut, " "); i > maxLen/2 {
		cut = cut[:i]
	}
	return cut + "..."
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
