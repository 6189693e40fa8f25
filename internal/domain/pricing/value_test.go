package pricing

import (
	"math"
	"testing"
)

func TestScoreUndefinedCases(t *testing.T) {
	s := NewScorer()

	t.Run("capability at baseline", func(t *testing.T) {
		if _, ok := s.Score(DefaultBaseline, 5, 5, 1); ok {
			t.Error("capability equal to baseline must yield no score")
		}
	})

	t.Run("capability below baseline", func(t *testing.T) {
		if _, ok := s.Score(900, 5, 5, 1); ok {
			t.Error("capability below baseline must yield no score")
		}
	})

	t.Run("capability absent", func(t *testing.T) {
		if _, ok := s.Score(math.NaN(), 5, 5, 1); ok {
			t.Error("NaN capability must yield no score")
		}
	})

	t.Run("zero blended price", func(t *testing.T) {
		if _, ok := s.Score(1300, 0, 0, 1); ok {
			t.Error("zero blended price must yield no score")
		}
	})

	t.Run("negative blended price", func(t *testing.T) {
		if _, ok := s.Score(1300, -3, 1, 1); ok {
			t.Error("negative blended price must yield no score")
		}
	})
}

func TestScoreFormula(t *testing.T) {
	s := NewScorer()

	got, ok := s.Score(1300, 5, 5, 1)
	if !ok {
		t.Fatal("expected a defined score")
	}
	want := (1300 - DefaultBaseline) / math.Log(1+5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %f, want %f", got, want)
	}
}

func TestScoreMonotonicity(t *testing.T) {
	s := NewScorer()

	t.Run("increasing in capability", func(t *testing.T) {
		lo, _ := s.Score(1200, 5, 5, 1)
		hi, _ := s.Score(1400, 5, 5, 1)
		if hi <= lo {
			t.Errorf("score must increase with capability: %f vs %f", lo, hi)
		}
	})

	t.Run("decreasing in blended price", func(t *testing.T) {
		cheap, _ := s.Score(1400, 1, 1, 1)
		costly, _ := s.Score(1400, 30, 30, 1)
		if costly >= cheap {
			t.Errorf("score must decrease with price: %f vs %f", cheap, costly)
		}
	})

	t.Run("decreasing in rank", func(t *testing.T) {
		top, _ := s.Score(1500, 5, 5, 1)
		tenth, _ := s.Score(1500, 5, 5, 10)
		if tenth >= top {
			t.Errorf("score must decrease with rank: rank 1 %f, rank 10 %f", top, tenth)
		}
	})

	t.Run("rank one gets full multiplier", func(t *testing.T) {
		one, _ := s.Score(1500, 5, 5, 1)
		zero, _ := s.Score(1500, 5, 5, 0)
		if one != zero {
			t.Errorf("rank below 1 must clamp to 1: %f vs %f", zero, one)
		}
	})
}
