package core

import (
	"fmt"
	"time"
)

// Kind identifies one of the two matched populations.
type Kind int

const (
	// KindStudent represents the seeker population.
	KindStudent Kind = iota + 1
	// KindMentor represents the provider population.
	KindMentor
)

// String returns the wire name of the kind ("student" or "mentor").
func (k Kind) String() string {
	switch k {
	case KindStudent:
		return "student"
	case KindMentor:
		return "mentor"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Counterpart returns the opposite population.
func (k Kind) Counterpart() Kind {
	if k == KindStudent {
		return KindMentor
	}
	return KindStudent
}

// ParseKind converts a wire name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "student", "students":
		return KindStudent, nil
	case "mentor", "mentors":
		return KindMentor, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Profile is a read-only view of a subject or counterpart owned by the
// external profile store. Student and mentor fields share one record; fields
// that do not apply to a population are simply empty.
type Profile struct {
	ID   int64  `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// Shared free-text attributes
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
	Bio         string `json:"bio,omitempty"`

	// Student attributes
	Major             string  `json:"major,omitempty"`
	DegreeLevel       string  `json:"degreeLevel,omitempty"`
	GraduationYear    int     `json:"graduationYear,omitempty"`
	GPA               float64 `json:"gpa,omitempty"`
	ResearchInterests string  `json:"researchInterests,omitempty"`
	ExpectedDirection string  `json:"expectedDirection,omitempty"`
	PersonalAbilities string  `json:"personalAbilities,omitempty"`
	ProgrammingSkills string  `json:"programmingSkills,omitempty"`
	PreferenceSummary string  `json:"preferenceSummary,omitempty"`
	PublicationsCount int     `json:"publicationsCount,omitempty"`
	ProjectExperience string  `json:"projectExperience,omitempty"`

	// Mentor attributes
	Title             string `json:"title,omitempty"`
	ResearchAreas     string `json:"researchAreas,omitempty"`
	GroupDirection    string `json:"groupDirection,omitempty"`
	ExpectedQualities string `json:"expectedQualities,omitempty"`
	MentoringStyle    string `json:"mentoringStyle,omitempty"`
	AcceptingStudents bool   `json:"acceptingStudents,omitempty"`
	MaxStudents       int    `json:"maxStudents,omitempty"`
	CurrentStudents   int    `json:"currentStudents,omitempty"`

	// Track record
	RatingAvg   float64 `json:"ratingAvg,omitempty"`
	RatingCount int     `json:"ratingCount,omitempty"`
	ViewCount   int     `json:"viewCount,omitempty"`
	Verified    bool    `json:"verified,omitempty"`

	Active bool `json:"active"`
}

// SearchCriterion is one weighted (dimension, query text) pair submitted to
// semantic retrieval. Criteria are built fresh per request and never
// persisted. Dimensions are unique within one subject's criteria list.
type SearchCriterion struct {
	Dimension string
	Query     string
	Weight    float64
}

// SimilarityHit is one scored candidate identifier returned by the vector
// index for a single query.
type SimilarityHit struct {
	CandidateID int64
	Score       float64
}

// CandidateMatch accumulates per-dimension scores for one candidate during
// aggregation. The deterministic scorer appends bonus dimensions and the
// reranker attaches rationale and rank.
type CandidateMatch struct {
	CandidateID int64
	Scores      map[string]float64
	TotalScore  float64
	Rationale   string
	Rank        int
}

// NewCandidateMatch creates an empty match for a candidate.
func NewCandidateMatch(id int64) *CandidateMatch {
	return &CandidateMatch{
		CandidateID: id,
		Scores:      make(map[string]float64),
	}
}

// AddScore merges a weighted score into the accumulator for a dimension.
// Merge is by sum, keyed on the dimension name.
func (m *CandidateMatch) AddScore(dimension string, score float64) {
	m.Scores[dimension] += score
}

// Sum returns the sum of all per-dimension contributions.
func (m *CandidateMatch) Sum() float64 {
	var total float64
	for _, s := range m.Scores {
		total += s
	}
	return total
}

// FallbackTier is the degradation level that actually produced a response.
type FallbackTier int

const (
	// TierSemantic means the full semantic pipeline produced the result.
	TierSemantic FallbackTier = iota
	// TierKeyword means keyword-overlap matching produced the result.
	TierKeyword
	// TierPopularity means the popularity ordering produced the result.
	TierPopularity
)

// String returns the tier name for logging.
func (t FallbackTier) String() string {
	switch t {
	case TierSemantic:
		return "semantic"
	case TierKeyword:
		return "keyword"
	case TierPopularity:
		return "popularity"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Recommendation is one ranked counterpart with its resolved profile, the
// clipped total score, per-dimension detail, and a non-empty rationale.
type Recommendation struct {
	Profile *Profile           `json:"profile"`
	Score   float64            `json:"score"`
	Details map[string]float64 `json:"details"`
	Reason  string             `json:"reason"`
	Rank    int                `json:"rank"`
}

// RecommendationSet is the ordered response for one subject. Tier reports the
// fallback level used, which callers may surface as a low-confidence
// indicator when greater than TierSemantic.
type RecommendationSet struct {
	Items       []Recommendation `json:"items"`
	Tier        FallbackTier     `json:"tier"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
