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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/mentormatch/core"
)

func TestAvailabilityBonus(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())

	t.Run("not accepting is exactly zero", func(t *testing.T) {
		mentor := &core.Profile{
			Kind:              core.KindMentor,
			AcceptingStudents: false,
			MaxStudents:       10,
			CurrentStudents:   0,
		}
		assert.Equal(t, 0.0, scorer.availabilityBonus(mentor))
	})

	t.Run("remaining capacity ratio", func(t *testing.T) {
		mentor := &core.Profile{
			Kind:              core.KindMentor,
			AcceptingStudents: true,
			MaxStudents:       5,
			CurrentStudents:   2,
		}
		assert.InDelta(t, 0.6, scorer.availabilityBonus(mentor), 1e-9)
	})

	t.Run("unconfigured capacity is neutral", func(t *testing.T) {
		mentor := &core.Profile{Kind: core.KindMentor, AcceptingStudents: true}
		assert.Equal(t, 0.5, scorer.availabilityBonus(mentor))
	})

	t.Run("overfull clamps to zero", func(t *testing.T) {
		mentor := &core.Profile{
			Kind:              core.KindMentor,
			AcceptingStudents: true,
			MaxStudents:       3,
			CurrentStudents:   5,
		}
		assert.Equal(t, 0.0, scorer.availabilityBonus(mentor))
	})
}

func TestQualityBonus(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())

	t.Run("verified outranks unverified at equal rating", func(t *testing.T) {
		verified := &core.Profile{Kind: core.KindMentor, RatingAvg: 4.0, RatingCount: 10, Verified: true}
		unverified := &core.Profile{Kind: core.KindMentor, RatingAvg: 4.0, RatingCount: 10}
		assert.Greater(t, scorer.qualityBonus(verified), scorer.qualityBonus(unverified))
	})

	t.Run("rating volume scales logarithmically and caps", func(t *testing.T) {
		few := &core.Profile{Kind: core.KindMentor, RatingAvg: 4.0, RatingCount: 2}
		many := &core.Profile{Kind: core.KindMentor, RatingAvg: 4.0, RatingCount: 100}
		huge := &core.Profile{Kind: core.KindMentor, RatingAvg: 4.0, RatingCount: 100000}
		assert.Greater(t, scorer.qualityBonus(many), scorer.qualityBonus(few))
		assert.InDelta(t, scorer.qualityBonus(many), scorer.qualityBonus(huge), 1e-9)
	})

	t.Run("stays within unit range", func(t *testing.T) {
		maxed := &core.Profile{Kind: core.KindMentor, RatingAvg: 5.0, RatingCount: 100000, Verified: true}
		assert.LessOrEqual(t, scorer.qualityBonus(maxed), 1.0)
	})
}

func TestAcademicBonus(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())

	t.Run("degree ladder", func(t *testing.T) {
		phd := &core.Profile{Kind: core.KindStudent, GPA: 3.0, DegreeLevel: "PhD"}
		master := &core.Profile{Kind: core.KindStudent, GPA: 3.0, DegreeLevel: "Master"}
		bachelor := &core.Profile{Kind: core.KindStudent, GPA: 3.0, DegreeLevel: "Bachelor"}
		assert.Greater(t, scorer.academicBonus(phd), scorer.academicBonus(master))
		assert.Greater(t, scorer.academicBonus(master), scorer.academicBonus(bachelor))
	})

	t.Run("publications cap", func(t *testing.T) {
		some := &core.Profile{Kind: core.KindStudent, GPA: 3.5, PublicationsCount: 3}
		pile := &core.Profile{Kind: core.KindStudent, GPA: 3.5, PublicationsCount: 50}
		assert.InDelta(t, 3.5/4.0*0.6+0.09, scorer.academicBonus(some), 1e-9)
		assert.InDelta(t, 3.5/4.0*0.6+0.15, scorer.academicBonus(pile), 1e-9)
	})
}

func TestBackgroundBonus(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())

	subject := &core.Profile{Kind: core.KindStudent, Major: "computer science"}

	t.Run("field overlap", func(t *testing.T) {
		match := &core.Profile{Kind: core.KindMentor, Department: "computer science"}
		miss := &core.Profile{Kind: core.KindMentor, Department: "history"}
		assert.Greater(t, scorer.backgroundBonus(match, subject), scorer.backgroundBonus(miss, subject))
	})

	t.Run("prestige institution", func(t *testing.T) {
		prestige := &core.Profile{Kind: core.KindMentor, Institution: "MIT CSAIL"}
		plain := &core.Profile{Kind: core.KindMentor, Institution: "Somewhere State"}
		assert.InDelta(t, 0.4, scorer.backgroundBonus(prestige, subject), 1e-9)
		assert.Equal(t, 0.0, scorer.backgroundBonus(plain, subject))
	})
}

func TestRecencyBonus(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig())
	scorer.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }

	cases := []struct {
		name string
		year int
		want float64
	}{
		{"this year", 2026, 1.0},
		{"window edge", 2028, 1.0},
		{"one year past", 2025, 0.8},
		{"far past floors at zero", 2015, 0.0},
		{"one year beyond window", 2029, 0.85},
		{"unset year", 0, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &core.Profile{Kind: core.KindStudent, GraduationYear: tc.year}
			assert.InDelta(t, tc.want, scorer.recencyBonus(p), 1e-9)
		})
	}
}

func TestScorerApply(t *testing.T) {
	cfg := DefaultScoringConfig()
	scorer := NewScorer(cfg)
	subject := &core.Profile{Kind: core.KindStudent, Major: "computer science"}

	t.Run("bonus dimensions are visible even at zero", func(t *testing.T) {
		mentor := &core.Profile{Kind: core.KindMentor, AcceptingStudents: false}
		match := core.NewCandidateMatch(1)
		match.AddScore(DimResearchInterests, 0.3)

		scorer.Apply(match, mentor, subject)

		assert.Contains(t, match.Scores, DimAvailabilityBonus)
		assert.Equal(t, 0.0, match.Scores[DimAvailabilityBonus])
		assert.Contains(t, match.Scores, DimQualityBonus)
		assert.Contains(t, match.Scores, DimBackgroundBonus)
	})

	t.Run("total is clipped to one", func(t *testing.T) {
		mentor := &core.Profile{
			Kind:              core.KindMentor,
			AcceptingStudents: true,
			RatingAvg:         5.0,
			RatingCount:       1000,
			Verified:          true,
			Institution:       "Stanford",
			Department:        "computer science",
		}
		match := core.NewCandidateMatch(1)
		match.AddScore(DimResearchInterests, 0.95)
		match.AddScore(DimExpectedDirection, 0.20)

		total := scorer.Apply(match, mentor, subject)

		assert.Equal(t, 1.0, total)
		assert.Equal(t, 1.0, match.TotalScore)
	})

	t.Run("total never negative", func(t *testing.T) {
		mentor := &core.Profile{Kind: core.KindMentor}
		match := core.NewCandidateMatch(1)

		total := scorer.Apply(match, mentor, subject)

		assert.GreaterOrEqual(t, total, 0.0)
	})
}
