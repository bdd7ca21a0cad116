// Copyright 2025 Poiesic Systems
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
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/mentormatch/ai"
	"github.com/poiesic/mentormatch/ai/openai"
	"github.com/poiesic/mentormatch/api"
	"github.com/poiesic/mentormatch/cache"
	cachebadger "github.com/poiesic/mentormatch/cache/badger"
	"github.com/poiesic/mentormatch/profiles"
	"github.com/poiesic/mentormatch/recommend"
	"github.com/poiesic/mentormatch/semantic"
)

func main() {
	app := &cli.App{
		Name:  "matchd",
		Usage: "Mentorship matching and recommendation service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the recommendation HTTP service",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to serve the API on",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:     "profiles",
						Aliases:  []string{"p"},
						Usage:    "Path to the JSON profile fixture",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Directory for the persistent cache (empty runs in memory)",
					},
					&cli.StringFlag{
						Name:  "semantic-url",
						Usage: "Base URL of the vector search service (empty disables semantic retrieval)",
					},
					&cli.StringFlag{
						Name:  "llm-host",
						Usage: "OpenAI-compatible completion host for reranking (empty disables reranking)",
					},
					&cli.StringFlag{
						Name:    "llm-key",
						Usage:   "API key for the completion host",
						EnvVars: []string{"MATCHD_LLM_KEY"},
					},
					&cli.StringFlag{
						Name:  "llm-model",
						Usage: "Completion model identifier",
						Value: "deepseek/deepseek-chat",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for the retrieval fan-out",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	store := profiles.NewMemory()
	if err := store.LoadFile(c.String("profiles")); err != nil {
		return err
	}
	slog.Info("profiles loaded", "path", c.String("profiles"))

	var cacheStore cache.Store
	var err error
	if dir := c.String("cache-dir"); dir != "" {
		cacheStore, err = cachebadger.OpenStore(dir, false)
	} else {
		cacheStore, err = cachebadger.NewMemoryStore()
	}
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer cacheStore.Close()

	opts := []recommend.Option{}
	if workers := c.Int("workers"); workers > 0 {
		opts = append(opts, recommend.WithPoolSize(workers))
	}

	if baseURL := c.String("semantic-url"); baseURL != "" {
		client := semantic.NewClient(baseURL)
		opts = append(opts,
			recommend.WithRetriever(client),
			recommend.WithEmbedder(client),
			recommend.WithIndexer(client),
		)
		slog.Info("semantic retrieval enabled", "url", baseURL)
	} else {
		slog.Warn("semantic retrieval disabled, serving keyword tier only")
	}

	if host := c.String("llm-host"); host != "" {
		completer, err := openai.NewCompleter(ai.NewConfig(
			ai.WithHost(host),
			ai.WithAPIKey(c.String("llm-key")),
			ai.WithModel(c.String("llm-model")),
		))
		if err != nil {
			return fmt.Errorf("configuring completer: %w", err)
		}
		opts = append(opts, recommend.WithCompleter(completer))
		slog.Info("reranking enabled", "model", c.String("llm-model"))
	}

	engine, err := recommend.NewEngine(store, cacheStore, opts...)
	if err != nil {
		return err
	}
	defer engine.Close()

	server := &http.Server{
		Addr:              c.String("listen"),
		Handler:           api.NewHandler(engine).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving recommendations", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
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
