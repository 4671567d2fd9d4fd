package stats

import (
	"math"
	"strings"
)

const defaultCategoryID = "1"

type Tier struct {
	Threshold int64  `json:"needScore"`
	IconRef   string `json:"iconUrl"`
}

// TierConfig maps a category id to its tier ladder. Thresholds within one
// ladder are strictly increasing.
type TierConfig map[string][]Tier

type CurrentTier struct {
	IconRef     string `json:"iconRef"`
	IconURL     string `json:"iconUrl"`
	Threshold   int64  `json:"thresholdScore"`
	PlayerScore int64  `json:"playerScore"`
}

type NextTier struct {
	IconRef   string `json:"iconRef"`
	IconURL   string `json:"iconUrl"`
	Threshold int64  `json:"thresholdScore"`
}

type RankResult struct {
	Current         *CurrentTier `json:"current"`
	Next            *NextTier    `json:"next"`
	ProgressPercent float64      `json:"progressPercent"`
	CategoryID      string       `json:"categoryId"`
	IsMaxTier       bool         `json:"isMaxTier"`
}

// CalculateRank places the player on the ladder of their highest scoring
// category. Equal category scores resolve to the later category.
func CalculateRank(categoryScores Counters, config TierConfig) *RankResult {
	if config == nil {
		return nil
	}

	categoryID := defaultCategoryID
	var score int64
	for _, c := range categoryScores {
		if c.Value >= score {
			score = c.Value
			categoryID = c.Key
		}
	}

	tiers := config[categoryID]
	if len(tiers) == 0 {
		return nil
	}

	var current, next *Tier
	for i := range tiers {
		if score >= tiers[i].Threshold {
			current = &tiers[i]
			continue
		}
		next = &tiers[i]
		break
	}
	if next == nil {
		next = current
	}

	progress := 0.0
	if next.Threshold > 0 {
		progress = math.Min(float64(score)/float64(next.Threshold)*100, 100)
	}
	isMax := score >= next.Threshold
	if isMax {
		progress = 100
	}

	result := &RankResult{
		ProgressPercent: round(progress, 1),
		CategoryID:      categoryID,
		IsMaxTier:       isMax,
	}
	if current != nil {
		result.Current = &CurrentTier{
			IconRef:     current.IconRef,
			IconURL:     ParseIconRef(current.IconRef),
			Threshold:   current.Threshold,
			PlayerScore: score,
		}
	}
	if !isMax {
		result.Next = &NextTier{
			IconRef:   next.IconRef,
			IconURL:   ParseIconRef(next.IconRef),
			Threshold: next.Threshold,
		}
	}
	return result
}

// ParseIconRef strips the "/URL:" marker and a single trailing "+" used by
// the game server config.
func ParseIconRef(raw string) string {
	if raw == "" {
		return ""
	}
	out := strings.Replace(raw, "/URL:", "", 1)
	return strings.TrimSuffix(out, "+")
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
