package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func infantryLadder() TierConfig {
	return TierConfig{
		"1": {
			{Threshold: 0, IconRef: "/URL:https://icons.example/rank1"},
			{Threshold: 1000, IconRef: "/URL:https://icons.example/rank2+"},
			{Threshold: 5000, IconRef: "/URL:https://icons.example/rank3+"},
			{Threshold: 10000, IconRef: "/URL:https://icons.example/rank4+"},
			{Threshold: 20000, IconRef: "/URL:https://icons.example/rank5+"},
		},
		"2": {
			{Threshold: 0, IconRef: "armor1"},
			{Threshold: 2000, IconRef: "armor2"},
		},
	}
}

func TestCalculateRank(t *testing.T) {
	t.Parallel()

	t.Run("mid ladder", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "1", Value: 15420}}, infantryLadder())
		require.NotNil(t, got)
		require.Equal(t, "1", got.CategoryID)
		require.Equal(t, int64(10000), got.Current.Threshold)
		require.Equal(t, int64(15420), got.Current.PlayerScore)
		require.Equal(t, "https://icons.example/rank4", got.Current.IconURL)
		require.Equal(t, int64(20000), got.Next.Threshold)
		require.Equal(t, 77.1, got.ProgressPercent)
		require.False(t, got.IsMaxTier)
	})

	t.Run("boundary is inclusive", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "1", Value: 10000}}, infantryLadder())
		require.Equal(t, int64(10000), got.Current.Threshold)
		require.Equal(t, int64(20000), got.Next.Threshold)
		require.Equal(t, 50.0, got.ProgressPercent)
	})

	t.Run("zero score sits on the first tier", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "1", Value: 0}}, infantryLadder())
		require.Equal(t, int64(0), got.Current.Threshold)
		require.Equal(t, int64(1000), got.Next.Threshold)
		require.Equal(t, 0.0, got.ProgressPercent)
	})

	t.Run("max tier", func(t *testing.T) {
		t.Parallel()
		for _, score := range []int64{20000, 25000} {
			got := CalculateRank(Counters{{Key: "1", Value: score}}, infantryLadder())
			require.True(t, got.IsMaxTier)
			require.Nil(t, got.Next)
			require.Equal(t, int64(20000), got.Current.Threshold)
			require.Equal(t, 100.0, got.ProgressPercent)
		}
	})

	t.Run("highest category wins", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "1", Value: 500}, {Key: "2", Value: 900}}, infantryLadder())
		require.Equal(t, "2", got.CategoryID)
		require.Equal(t, "armor1", got.Current.IconURL)
	})

	t.Run("equal scores favour the later category", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "1", Value: 700}, {Key: "2", Value: 700}}, infantryLadder())
		require.Equal(t, "2", got.CategoryID)
	})

	t.Run("no scores defaults to the first category", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(nil, infantryLadder())
		require.Equal(t, "1", got.CategoryID)
		require.Equal(t, int64(0), got.Current.PlayerScore)
	})

	t.Run("score below the first threshold", func(t *testing.T) {
		t.Parallel()
		got := CalculateRank(Counters{{Key: "x", Value: 50}}, TierConfig{"x": {{Threshold: 100}, {Threshold: 200}}})
		require.Nil(t, got.Current)
		require.Equal(t, int64(100), got.Next.Threshold)
		require.Equal(t, 50.0, got.ProgressPercent)
	})

	t.Run("missing config", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, CalculateRank(Counters{{Key: "1", Value: 10}}, nil))
	})

	t.Run("category without ladder", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, CalculateRank(Counters{{Key: "9", Value: 10}}, infantryLadder()))
		require.Nil(t, CalculateRank(Counters{{Key: "3", Value: 10}}, TierConfig{"3": {}}))
	})
}

func TestCalculateRankProgressMonotonicWithinTier(t *testing.T) {
	t.Parallel()

	ladder := infantryLadder()
	prev := -1.0
	for score := int64(10000); score < 20000; score += 250 {
		got := CalculateRank(Counters{{Key: "1", Value: score}}, ladder)
		require.GreaterOrEqual(t, got.ProgressPercent, prev)
		require.LessOrEqual(t, got.ProgressPercent, 100.0)
		prev = got.ProgressPercent
	}
}

func TestParseIconRef(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                    "",
		"/URL:https://icons.example/a+":       "https://icons.example/a",
		"/URL:https://icons.example/b":        "https://icons.example/b",
		"https://icons.example/c++":           "https://icons.example/c+",
		"https://icons.example/no-prefix.png": "https://icons.example/no-prefix.png",
	}
	for in, want := range cases {
		require.Equal(t, want, ParseIconRef(in), in)
	}
}
