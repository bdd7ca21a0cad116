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
	"log/slog"
	"sort"

	"github.com/poiesic/mentormatch/core"
	"github.com/poiesic/mentormatch/profiles"
)

// fallbackPageSize is how many counterparts one ListActive page holds
// while a fallback tier scans the store.
const fallbackPageSize = 200

// Fallback produces recommendations without semantic retrieval. The
// keyword tier matches on token overlap; the popularity tier only
// orders by track record and is the last resort when even the keyword
// scan fails.
type Fallback struct {
	store  profiles.Store
	scorer *Scorer
	cfg    *ScoringConfig
	logger *slog.Logger
}

// NewFallback creates the fallback chain over a profile store.
func NewFallback(store profiles.Store, scorer *Scorer, cfg *ScoringConfig) *Fallback {
	return &Fallback{
		store:  store,
		scorer: scorer,
		cfg:    cfg,
		logger: slog.Default().With("component", "fallback"),
	}
}

// profileTokens gathers a profile's free-text fields for overlap
// matching, picking the fields that exist for its kind.
func profileTokens(p *core.Profile) []string {
	text := p.ResearchInterests + " " + p.ExpectedDirection + " " + p.Keywords + " " + p.Major
	if p.Kind == core.KindMentor {
		text = p.ResearchAreas + " " + p.GroupDirection + " " + p.Keywords + " " + p.Department
	}
	return tokenizeAndFilter(text)
}

// Keyword scans every active counterpart, scores token overlap plus the
// deterministic bonuses on top of a fixed base, and returns the top
// limit matches. The overlap component is capped to leave headroom for
// bonuses. An error means the store scan itself failed and the caller
// should drop to the popularity tier.
func (f *Fallback) Keyword(ctx context.Context, subject *core.Profile, limit int) ([]core.Recommendation, error) {
	kind := subject.Kind.Counterpart()
	stokens := profileTokens(subject)

	var result []core.Recommendation
	for offset := 0; ; offset += fallbackPageSize {
		page, err := f.store.ListActive(ctx, kind, offset, fallbackPageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, candidate := range page {
			overlap := overlapRatio(stokens, profileTokens(candidate))
			if overlap > f.cfg.KeywordCap {
				overlap = f.cfg.KeywordCap
			}

			details := map[string]float64{DimKeywordMatch: overlap}
			score := f.cfg.KeywordBase + overlap
			for dim, bonus := range f.scorer.Bonuses(candidate, subject) {
				details[dim] = bonus
				score += bonus
			}

			result = append(result, core.Recommendation{
				Profile: candidate,
				Score:   clip01(score),
				Details: details,
				Reason:  templateReason(subject, candidate),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Rank = i + 1
	}
	return result, nil
}

// Popularity orders active counterparts by blended track record:
// normalized rating average at 0.7 and a bounded view count at 0.3.
// Rationales are templates; no overlap or bonus computation happens
// here so the tier stays serviceable with minimal data.
func (f *Fallback) Popularity(ctx context.Context, subject *core.Profile, limit int) ([]core.Recommendation, error) {
	kind := subject.Kind.Counterpart()

	var result []core.Recommendation
	for offset := 0; ; offset += fallbackPageSize {
		page, err := f.store.ListActive(ctx, kind, offset, fallbackPageSize)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		for _, candidate := range page {
			views := float64(candidate.ViewCount) / 100
			if views > 1 {
				views = 1
			}
			pop := clip01(candidate.RatingAvg/5*0.7 + views*0.3)

			result = append(result, core.Recommendation{
				Profile: candidate,
				Score:   pop,
				Details: map[string]float64{DimPopularity: pop},
				Reason:  templateReason(subject, candidate),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	for i := range result {
		result[i].Rank = i + 1
	}
	return result, nil
}
