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


package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-json"

	"github.com/poiesic/mentormatch/ai"
	"github.com/poiesic/mentormatch/core"
)

// ScoredCandidate pairs a resolved profile with its accumulated match.
// The engine builds the shortlist in descending score order before
// handing it to the reranker.
type ScoredCandidate struct {
	Profile *core.Profile
	Match   *core.CandidateMatch
}

// Reranker asks a language model to reorder a shortlist and explain
// each pick. It never fails the request: any model or parse problem
// falls back to the deterministic score order with template rationales.
type Reranker struct {
	completer ai.Completer
	logger    *slog.Logger
}

// NewReranker creates a reranker using the given completer. A nil
// completer is allowed and makes every call take the deterministic path.
func NewReranker(completer ai.Completer) *Reranker {
	return &Reranker{
		completer: completer,
		logger:    slog.Default().With("component", "reranker"),
	}
}

// rerankEntry is one item of the model's JSON array response. ID is the
// 1-based ordinal of the candidate in the prompt, not a profile id.
type rerankEntry struct {
	Rank   int    `json:"rank"`
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

// Rerank returns up to limit recommendations from the shortlist. On the
// happy path the model decides the order and writes the rationale; on
// any failure the shortlist order stands and rationales come from a
// template. Every returned item has a non-empty Reason and a 1-based
// Rank.
func (r *Reranker) Rerank(ctx context.Context, subject *core.Profile, shortlist []ScoredCandidate, limit int) []core.Recommendation {
	if len(shortlist) == 0 {
		return []core.Recommendation{}
	}
	if limit <= 0 || limit > len(shortlist) {
		limit = len(shortlist)
	}
	if r.completer == nil {
		return r.deterministic(subject, shortlist, limit)
	}

	response, err := r.completer.Complete(ctx, buildRerankPrompt(subject, shortlist, limit))
	if err != nil {
		r.logger.Warn("rerank completion failed, keeping score order",
			"err", fmt.Errorf("%w: %v", core.ErrRerankUnavailable, err))
		return r.deterministic(subject, shortlist, limit)
	}

	entries, err := parseRerankResponse(response)
	if err != nil {
		r.logger.Warn("rerank response unparseable, keeping score order",
			"err", fmt.Errorf("%w: %v", core.ErrRerankUnavailable, err))
		return r.deterministic(subject, shortlist, limit)
	}

	result := make([]core.Recommendation, 0, limit)
	seen := make(map[int]bool, len(entries))
	for _, entry := range entries {
		if entry.ID < 1 || entry.ID > len(shortlist) || seen[entry.ID] {
			r.logger.Debug("skipping invalid rerank ordinal", "id", entry.ID)
			continue
		}
		seen[entry.ID] = true

		candidate := shortlist[entry.ID-1]
		reason := strings.TrimSpace(entry.Reason)
		if reason == "" {
			reason = templateReason(subject, candidate.Profile)
		}

		result = append(result, core.Recommendation{
			Profile: candidate.Profile,
			Score:   candidate.Match.TotalScore,
			Details: candidate.Match.Scores,
			Reason:  reason,
			Rank:    len(result) + 1,
		})
		if len(result) == limit {
			break
		}
	}

	if len(result) == 0 {
		r.logger.Warn("rerank produced no usable entries, keeping score order")
		return r.deterministic(subject, shortlist, limit)
	}
	return result
}

// deterministic keeps the shortlist order and fills template rationales.
func (r *Reranker) deterministic(subject *core.Profile, shortlist []ScoredCandidate, limit int) []core.Recommendation {
	result := make([]core.Recommendation, 0, limit)
	for i, candidate := range shortlist[:limit] {
		result = append(result, core.Recommendation{
			Profile: candidate.Profile,
			Score:   candidate.Match.TotalScore,
			Details: candidate.Match.Scores,
			Reason:  templateReason(subject, candidate.Profile),
			Rank:    i + 1,
		})
	}
	return result
}

func buildRerankPrompt(subject *core.Profile, shortlist []ScoredCandidate, limit int) string {
	var b strings.Builder

	b.WriteString("You are ranking ")
	b.WriteString(subject.Kind.Counterpart().String())
	b.WriteString(" candidates for a mentorship match.\n\n")

	b.WriteString("Subject profile:\n")
	b.WriteString(FeatureText(subject))
	b.WriteString("\nCandidates:\n")
	for i, candidate := range shortlist {
		fmt.Fprintf(&b, "%d. (score %.3f)\n%s\n", i+1, candidate.Match.TotalScore, FeatureText(candidate.Profile))
	}

	fmt.Fprintf(&b, "\nSelect and order the best %d candidates for the subject. ", limit)
	b.WriteString("Respond with ONLY a JSON array, no other text:\n")
	b.WriteString("```json\n")
	b.WriteString(`[{"rank": 1, "id": <candidate number from the list above>, "reason": "<one sentence explaining the fit>"}]`)
	b.WriteString("\n```\n")

	return b.String()
}

// parseRerankResponse extracts the JSON array from a model response that
// may be wrapped in code fences or prose.
func parseRerankResponse(response string) ([]rerankEntry, error) {
	text := strings.TrimSpace(response)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}
	text = repairJSON(text[start : end+1])

	var entries []rerankEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// templateReason builds a deterministic rationale from topic overlap
// between subject and candidate. Always non-empty.
func templateReason(subject, candidate *core.Profile) string {
	subjectText := subject.ResearchInterests + " " + subject.ExpectedDirection + " " + subject.Keywords
	candidateText := candidate.ResearchAreas + " " + candidate.GroupDirection + " " + candidate.Keywords
	if subject.Kind == core.KindMentor {
		subjectText = subject.ResearchAreas + " " + subject.GroupDirection + " " + subject.Keywords
		candidateText = candidate.ResearchInterests + " " + candidate.ExpectedDirection + " " + candidate.Keywords
	}

	subjectTokens := tokenizeAndFilter(subjectText)
	candidateTokens := tokenizeAndFilter(candidateText)

	var shared []string
	for _, st := range subjectTokens {
		for _, ct := range candidateTokens {
			if tokensMatch(st, ct) {
				shared = append(shared, st)
				break
			}
		}
		if len(shared) == 3 {
			break
		}
	}

	if len(shared) > 0 {
		return fmt.Sprintf("Strong overlap in %s with your stated interests.", strings.Join(shared, ", "))
	}
	return "Ranked highly across your matching criteria."
}
