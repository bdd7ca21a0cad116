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
	"strings"

	"github.com/poiesic/mentormatch/core"
)

// criterionSource binds one semantic dimension to the profile field that
// feeds it and a phrase that frames the query text.
type criterionSource struct {
	dimension string
	prefix    string
	value     func(*core.Profile) string
}

// Fixed, ordered dimension sets per population. Order is stable so the
// aggregator's fan-out and the tests see deterministic criteria lists.
var studentSources = []criterionSource{
	{DimResearchInterests, "research interests", func(p *core.Profile) string { return p.ResearchInterests }},
	{DimExpectedDirection, "desired research direction", func(p *core.Profile) string { return p.ExpectedDirection }},
	{DimPersonalAbilities, "personal strengths", func(p *core.Profile) string { return p.PersonalAbilities }},
	{DimProgrammingSkills, "technical skills", func(p *core.Profile) string { return p.ProgrammingSkills }},
	{DimPreferenceSummary, "mentorship preferences", func(p *core.Profile) string { return p.PreferenceSummary }},
}

var mentorSources = []criterionSource{
	{DimResearchAreas, "research areas", func(p *core.Profile) string { return p.ResearchAreas }},
	{DimGroupDirection, "group research direction", func(p *core.Profile) string { return p.GroupDirection }},
	{DimExpectedQualities, "expected student qualities", func(p *core.Profile) string { return p.ExpectedQualities }},
	{DimKeywords, "keywords", func(p *core.Profile) string { return p.Keywords }},
}

// BuildCriteria turns a subject profile into its weighted retrieval
// criteria. Dimensions with empty profile fields are skipped; weights
// come from the config map for the subject's kind. When nothing is
// populated, a single default criterion with weight 1.0 is returned so
// the aggregator always has at least one query to run.
func BuildCriteria(subject *core.Profile, cfg *ScoringConfig) []core.SearchCriterion {
	var sources []criterionSource
	var weights map[string]float64
	switch subject.Kind {
	case core.KindStudent:
		sources = studentSources
		weights = cfg.StudentDimensionWeights
	case core.KindMentor:
		sources = mentorSources
		weights = cfg.MentorDimensionWeights
	}

	criteria := make([]core.SearchCriterion, 0, len(sources))
	for _, src := range sources {
		text := strings.TrimSpace(src.value(subject))
		if text == "" {
			continue
		}
		weight, ok := weights[src.dimension]
		if !ok || weight <= 0 {
			continue
		}
		criteria = append(criteria, core.SearchCriterion{
			Dimension: src.dimension,
			Query:     src.prefix + ": " + text,
			Weight:    weight,
		})
	}

	if len(criteria) == 0 {
		criteria = append(criteria, core.SearchCriterion{
			Dimension: DimDefault,
			Query:     defaultQuery,
			Weight:    1.0,
		})
	}
	return criteria
}
