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


package semantic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/poiesic/mentormatch/core"
)

// DefaultTimeout bounds one round trip to the vector service.
const DefaultTimeout = 10 * time.Second

// Client talks to the vector search service over HTTP. It covers the
// three operations the pipeline needs: embedding text, similarity
// search, and (re)indexing a profile document.
//
// All methods are safe for concurrent use; the underlying transport
// pools connections across criteria running in parallel.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption is a functional option for configuring a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request deadline. Zero keeps the default.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client entirely. Useful for tests
// and for callers that manage their own transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the vector service at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        32,
				MaxIdleConnsPerHost: 32,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: slog.Default().With("component", "semantic-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topK"`
}

type searchResponse struct {
	Results []struct {
		ID    int64   `json:"id"`
		Score float64 `json:"score"`
	} `json:"results"`
}

type indexRequest struct {
	ID     int64     `json:"id"`
	Text   string    `json:"text"`
	Vector []float32 `json:"vector,omitempty"`
}

// Embed converts text into a vector. Failures wrap
// core.ErrEmbeddingUnavailable so callers can degrade instead of abort.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp embedResponse
	err := c.post(ctx, c.baseURL+"/embedding", embedRequest{Text: text}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbeddingUnavailable, err)
	}
	if len(resp.Vector) == 0 {
		return nil, fmt.Errorf("%w: empty vector in response", core.ErrEmbeddingUnavailable)
	}
	return resp.Vector, nil
}

// Search runs a similarity query against the index for the given kind
// and returns up to topK hits ordered by descending score. Failures
// wrap core.ErrRetrievalUnavailable.
func (c *Client) Search(ctx context.Context, kind core.Kind, query string, topK int) ([]core.SimilarityHit, error) {
	var resp searchResponse
	url := fmt.Sprintf("%s/%s/search", c.baseURL, kind)
	err := c.post(ctx, url, searchRequest{Query: query, TopK: topK}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRetrievalUnavailable, err)
	}

	hits := make([]core.SimilarityHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hits = append(hits, core.SimilarityHit{CandidateID: r.ID, Score: r.Score})
	}
	return hits, nil
}

// Index upserts a profile document into the index for the given kind.
// A precomputed vector may be passed to skip server-side embedding.
// Failures wrap core.ErrRetrievalUnavailable.
func (c *Client) Index(ctx context.Context, kind core.Kind, id int64, text string, vector []float32) error {
	url := fmt.Sprintf("%s/%s/index", c.baseURL, kind)
	err := c.post(ctx, url, indexRequest{ID: id, Text: text, Vector: vector}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrRetrievalUnavailable, err)
	}
	return nil
}

// post sends a JSON request and decodes the JSON response into out.
// A nil out discards the response body.
func (c *Client) post(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("vector service request failed", "url", url, "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the log, then discard the rest.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("vector service returned error status",
			"url", url,
			"status", resp.StatusCode,
			"body", string(snippet))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	c.logger.Debug("vector service request completed",
		"url", url,
		"duration", time.Since(start))

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
