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


package openai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/poiesic/mentormatch/ai"
)

// Completer implements ai.Completer against OpenAI-compatible chat APIs.
type Completer struct {
	client      llms.Model
	temperature float64
	maxTokens   int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewCompleter creates a completion client using the provided configuration.
// The config is validated and normalized before use.
//
// Returns ai.Completer interface (not *Completer) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that
	// don't require authentication.
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:      client,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
		timeout:     config.Timeout,
		logger:      slog.Default().With("component", "openai-completer"),
	}, nil
}

// Complete sends a single-turn prompt and returns the raw response text.
// The round trip is bounded by the configured timeout regardless of the
// caller's context.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	start := time.Now()
	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return "", errors.New("completion returned no choices")
	}

	c.logger.Debug("completion finished",
		"prompt_len", len(prompt),
		"duration", time.Since(start))

	return response.Choices[0].Content, nil
}
