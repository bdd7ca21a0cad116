package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Run("string names", func(t *testing.T) {
		assert.Equal(t, "student", KindStudent.String())
		assert.Equal(t, "mentor", KindMentor.String())
	})

	t.Run("counterpart is the opposite population", func(t *testing.T) {
		assert.Equal(t, KindMentor, KindStudent.Counterpart())
		assert.Equal(t, KindStudent, KindMentor.Counterpart())
	})

	t.Run("parse accepts singular and plural", func(t *testing.T) {
		for _, name := range []string{"student", "students"} {
			k, err := ParseKind(name)
			require.NoError(t, err)
			assert.Equal(t, KindStudent, k)
		}
		for _, name := range []string{"mentor", "mentors"} {
			k, err := ParseKind(name)
			require.NoError(t, err)
			assert.Equal(t, KindMentor, k)
		}
	})

	t.Run("parse rejects unknown names", func(t *testing.T) {
		_, err := ParseKind("advisor")
		assert.ErrorIs(t, err, ErrInvalidKind)
	})
}

func TestCandidateMatch(t *testing.T) {
	t.Run("add score merges by sum on the dimension key", func(t *testing.T) {
		m := NewCandidateMatch(7)
		m.AddScore("research_interests", 0.32)
		m.AddScore("research_interests", 0.08)
		m.AddScore("expected_direction", 0.2)

		assert.InDelta(t, 0.40, m.Scores["research_interests"], 1e-9)
		assert.InDelta(t, 0.60, m.Sum(), 1e-9)
	})

	t.Run("empty match sums to zero", func(t *testing.T) {
		m := NewCandidateMatch(1)
		assert.Zero(t, m.Sum())
	})
}

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := Fingerprint("research interests: machine learning")
		b := Fingerprint("research interests: machine learning")
		assert.Equal(t, a, b)
	})

	t.Run("content sensitive", func(t *testing.T) {
		a := Fingerprint("research interests: machine learning")
		b := Fingerprint("research interests: robotics")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty text has a stable fingerprint", func(t *testing.T) {
		assert.Equal(t, Fingerprint(""), Fingerprint(""))
	})
}
