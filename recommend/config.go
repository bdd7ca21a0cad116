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

import "time"

// Dimension names for semantic criteria. Each appears at most once per
// subject and keys the per-dimension score detail on results.
const (
	DimResearchInterests = "research_interests"
	DimExpectedDirection = "expected_direction"
	DimPersonalAbilities = "personal_abilities"
	DimProgrammingSkills = "programming_skills"
	DimPreferenceSummary = "preference_summary"
	DimResearchAreas     = "research_areas"
	DimGroupDirection    = "group_direction"
	DimExpectedQualities = "expected_qualities"
	DimKeywords          = "keywords"
	DimDefault           = "general"
)

// Dimension names for deterministic bonus scores and fallback scores.
const (
	DimQualityBonus      = "quality_bonus"
	DimAvailabilityBonus = "availability_bonus"
	DimAcademicBonus     = "academic_bonus"
	DimBackgroundBonus   = "background_bonus"
	DimRecencyBonus      = "recency_bonus"
	DimKeywordMatch      = "keyword_match"
	DimPopularity        = "popularity"
)

// defaultQuery seeds retrieval when a subject's profile has no usable
// criterion text at all.
const defaultQuery = "computer science artificial intelligence machine learning"

// ScoringConfig carries every tunable of the deterministic scoring and
// retrieval stages. Zero values are not usable; start from
// DefaultScoringConfig and adjust.
type ScoringConfig struct {
	// StudentDimensionWeights weight the criteria built from a student
	// profile when searching for mentors.
	StudentDimensionWeights map[string]float64

	// MentorDimensionWeights weight the criteria built from a mentor
	// profile when searching for students.
	MentorDimensionWeights map[string]float64

	// Bonus weights applied to the raw bonus scores before they join
	// the per-dimension totals.
	QualityWeight      float64
	AvailabilityWeight float64
	AcademicWeight     float64
	BackgroundWeight   float64
	RecencyWeight      float64

	// PrestigeInstitutions gets a candidate the institution component
	// of the background bonus.
	PrestigeInstitutions []string

	// KeywordBase is the floor score every keyword-tier result starts
	// from; KeywordCap bounds the overlap component.
	KeywordBase float64
	KeywordCap  float64

	// TopK is how many hits each criterion requests from retrieval.
	TopK int

	// ShortlistSize is how many top candidates are offered to the
	// reranker.
	ShortlistSize int

	// CacheTTL bounds how long a recommendation set stays served from
	// cache; EmbeddingTTL does the same for memoized profile vectors.
	CacheTTL     time.Duration
	EmbeddingTTL time.Duration

	// RetrievalTimeout bounds one criterion's retrieval call.
	RetrievalTimeout time.Duration
}

// DefaultScoringConfig returns the production scoring parameters.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		StudentDimensionWeights: map[string]float64{
			DimResearchInterests: 0.30,
			DimExpectedDirection: 0.25,
			DimPersonalAbilities: 0.15,
			DimProgrammingSkills: 0.10,
			DimPreferenceSummary: 0.20,
		},
		MentorDimensionWeights: map[string]float64{
			DimResearchAreas:     0.30,
			DimGroupDirection:    0.25,
			DimExpectedQualities: 0.25,
			DimKeywords:          0.20,
		},
		QualityWeight:      0.10,
		AvailabilityWeight: 0.05,
		AcademicWeight:     0.10,
		BackgroundWeight:   0.05,
		RecencyWeight:      0.05,
		PrestigeInstitutions: []string{
			"mit", "stanford", "cmu", "berkeley", "tsinghua", "peking",
		},
		KeywordBase:      0.30,
		KeywordCap:       0.70,
		TopK:             30,
		ShortlistSize:    15,
		CacheTTL:         time.Hour,
		EmbeddingTTL:     24 * time.Hour,
		RetrievalTimeout: 10 * time.Second,
	}
}
