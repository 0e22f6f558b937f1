// Package statistics provides derived statistics over aggregated cards.
// Every function here is a pure, deterministic computation with no side
// effects over the card list it is given.
package statistics

import (
	"sort"
	"strings"

	"github.com/lazycat-apps/milka/internal/deck"
)

// Difficulty bounds of the length-bucketed score.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// CardStatistics summarizes a list of cards.
type CardStatistics struct {
	TotalCards             int         `json:"totalCards"`
	AverageWordCount       int         `json:"averageWordCount"`
	DifficultyDistribution map[int]int `json:"difficultyDistribution"`
	CardsWithNotes         int         `json:"cardsWithNotes"`
}

// WordCount returns the total whitespace-separated word count of both texts.
func WordCount(frontText, backText string) int {
	return len(strings.Fields(frontText)) + len(strings.Fields(backText))
}

// Difficulty scores a card from 1 to 5 based on the combined length of its
// two face texts: <20 runes is 1, <50 is 2, <100 is 3, <200 is 4, otherwise 5.
func Difficulty(c deck.Card) int {
	total := len([]rune(c.Front.MainText)) + len([]rune(c.Back.MainText))
	switch {
	case total < 20:
		return 1
	case total < 50:
		return 2
	case total < 100:
		return 3
	case total < 200:
		return 4
	default:
		return 5
	}
}

// AverageWordCount returns the rounded mean word count across cards, or 0 for
// an empty list.
func AverageWordCount(cards []deck.Card) int {
	if len(cards) == 0 {
		return 0
	}
	total := 0
	for _, c := range cards {
		total += WordCount(c.Front.MainText, c.Back.MainText)
	}
	return (total + len(cards)/2) / len(cards)
}

// DifficultyDistribution counts cards per difficulty score. Every score from
// 1 to 5 is present in the result, possibly with a zero count.
func DifficultyDistribution(cards []deck.Card) map[int]int {
	distribution := make(map[int]int, MaxDifficulty)
	for d := MinDifficulty; d <= MaxDifficulty; d++ {
		distribution[d] = 0
	}
	for _, c := range cards {
		distribution[Difficulty(c)]++
	}
	return distribution
}

// Calculate summarizes the card list.
func Calculate(cards []deck.Card) CardStatistics {
	stats := CardStatistics{
		TotalCards:             len(cards),
		AverageWordCount:       AverageWordCount(cards),
		DifficultyDistribution: DifficultyDistribution(cards),
	}
	for _, c := range cards {
		if c.Front.Notes != "" {
			stats.CardsWithNotes++
		}
	}
	return stats
}

// SortByDifficulty returns a copy of cards ordered by descending difficulty,
// equal scores keeping their original order.
func SortByDifficulty(cards []deck.Card) []deck.Card {
	sorted := make([]deck.Card, len(cards))
	copy(sorted, cards)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Difficulty(sorted[i]) > Difficulty(sorted[j])
	})
	return sorted
}
