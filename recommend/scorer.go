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
	"math"
	"strings"
	"time"

	"github.com/poiesic/mentormatch/core"
)

// Scorer computes heuristic bonus terms from structured profile
// attributes, independent of semantic retrieval. Every bonus is stored
// as its own dimension on the candidate so it stays visible downstream.
type Scorer struct {
	cfg *ScoringConfig
	now func() time.Time
}

// NewScorer creates a scorer with the given configuration.
func NewScorer(cfg *ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg, now: time.Now}
}

// Apply adds the bonus dimensions for one candidate to its match and
// returns the clipped total. Which bonuses apply depends on the
// candidate's kind: mentors earn quality and availability, students earn
// academic and recency, both earn background affinity. A bonus is stored
// even when it is 0 so the reranker and response details show it.
func (s *Scorer) Apply(match *core.CandidateMatch, candidate, subject *core.Profile) float64 {
	switch candidate.Kind {
	case core.KindMentor:
		match.AddScore(DimQualityBonus, s.qualityBonus(candidate)*s.cfg.QualityWeight)
		match.AddScore(DimAvailabilityBonus, s.availabilityBonus(candidate)*s.cfg.AvailabilityWeight)
		match.AddScore(DimBackgroundBonus, s.backgroundBonus(candidate, subject)*s.cfg.BackgroundWeight)
	case core.KindStudent:
		match.AddScore(DimAcademicBonus, s.academicBonus(candidate)*s.cfg.AcademicWeight)
		match.AddScore(DimBackgroundBonus, s.backgroundBonus(candidate, subject)*s.cfg.BackgroundWeight)
		match.AddScore(DimRecencyBonus, s.recencyBonus(candidate)*s.cfg.RecencyWeight)
	}

	match.TotalScore = clip01(match.Sum())
	return match.TotalScore
}

// Bonuses computes the applicable raw bonus map without touching a
// match. The fallback tiers use it to add weighted bonuses onto their
// own base scores.
func (s *Scorer) Bonuses(candidate, subject *core.Profile) map[string]float64 {
	out := make(map[string]float64)
	switch candidate.Kind {
	case core.KindMentor:
		out[DimQualityBonus] = s.qualityBonus(candidate) * s.cfg.QualityWeight
		out[DimAvailabilityBonus] = s.availabilityBonus(candidate) * s.cfg.AvailabilityWeight
		out[DimBackgroundBonus] = s.backgroundBonus(candidate, subject) * s.cfg.BackgroundWeight
	case core.KindStudent:
		out[DimAcademicBonus] = s.academicBonus(candidate) * s.cfg.AcademicWeight
		out[DimBackgroundBonus] = s.backgroundBonus(candidate, subject) * s.cfg.BackgroundWeight
		out[DimRecencyBonus] = s.recencyBonus(candidate) * s.cfg.RecencyWeight
	}
	return out
}

// qualityBonus blends rating average, log-scaled rating count, and the
// verification flag into [0,1].
func (s *Scorer) qualityBonus(p *core.Profile) float64 {
	rating := clip01(p.RatingAvg/5.0) * 0.6

	volume := math.Log10(float64(p.RatingCount)+1) / 2 * 0.4
	if volume > 0.4 {
		volume = 0.4
	}

	verified := 0.0
	if p.Verified {
		verified = 0.2
	}

	return clip01(rating + volume + verified)
}

// availabilityBonus is exactly 0 when the mentor is not accepting
// students, regardless of capacity fields. Otherwise it is the
// remaining capacity ratio, with a neutral 0.5 when capacity is
// unconfigured.
func (s *Scorer) availabilityBonus(p *core.Profile) float64 {
	if !p.AcceptingStudents {
		return 0
	}
	if p.MaxStudents <= 0 {
		return 0.5
	}
	ratio := float64(p.MaxStudents-p.CurrentStudents) / float64(p.MaxStudents)
	return clip01(ratio)
}

// academicBonus blends GPA, degree level, and publication count.
func (s *Scorer) academicBonus(p *core.Profile) float64 {
	gpa := clip01(p.GPA/4.0) * 0.6

	var degree float64
	switch strings.ToLower(p.DegreeLevel) {
	case "phd", "doctorate":
		degree = 0.4
	case "master", "masters", "msc":
		degree = 0.3
	case "bachelor", "bachelors", "bsc":
		degree = 0.2
	}

	pubs := float64(p.PublicationsCount) * 0.03
	if pubs > 0.15 {
		pubs = 0.15
	}

	return clip01(gpa + degree + pubs)
}

// backgroundBonus measures token overlap between the candidate's field
// text and the subject's, plus a fixed component when the candidate's
// institution is on the prestige list.
func (s *Scorer) backgroundBonus(candidate, subject *core.Profile) float64 {
	candidateText := candidate.Major
	if candidate.Kind == core.KindMentor {
		candidateText = candidate.Department
	}
	subjectText := subject.Major
	if subject.Kind == core.KindMentor {
		subjectText = subject.Department
	}

	candidateTokens := tokenizeAndFilter(candidateText)
	subjectTokens := tokenizeAndFilter(subjectText)

	var overlap float64
	for _, st := range subjectTokens {
		for _, ct := range candidateTokens {
			if tokensMatch(st, ct) {
				overlap += 0.2
				break
			}
		}
	}
	if overlap > 0.6 {
		overlap = 0.6
	}

	var prestige float64
	inst := strings.ToLower(candidate.Institution)
	for _, name := range s.cfg.PrestigeInstitutions {
		if inst != "" && strings.Contains(inst, name) {
			prestige = 0.4
			break
		}
	}

	return clip01(overlap + prestige)
}

// recencyBonus is 1.0 when graduation falls within the next two years,
// decays linearly outside the window, and floors at 0. A zero
// graduation year earns nothing.
func (s *Scorer) recencyBonus(p *core.Profile) float64 {
	if p.GraduationYear == 0 {
		return 0
	}
	years := float64(p.GraduationYear - s.now().Year())
	switch {
	case years >= 0 && years <= 2:
		return 1.0
	case years < 0:
		return clip01(1.0 - math.Abs(years)*0.2)
	default:
		return clip01(1.0 - (years-2)*0.15)
	}
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
