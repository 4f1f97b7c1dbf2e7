package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/transitstats/TransitStats_Go/internal/domain"
)

var testBoard = domain.BoardKey{Window: domain.Window1W, Category: domain.CategoryDistance}

func values(vals ...float64) []domain.MetricValue {
	out := make([]domain.MetricValue, 0, len(vals))
	for i, v := range vals {
		out = append(out, domain.MetricValue{UserID: string(rune('a' + i)), Value: v})
	}
	return out
}

func TestRank_CompetitionRanking(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name            string
		values          []domain.MetricValue
		wantRanks       []int
		wantPercentiles []float64
	}{
		{
			name:            "single user",
			values:          values(10),
			wantRanks:       []int{1},
			wantPercentiles: []float64{100},
		},
		{
			name:            "two-way tie shares first-seen rank and percentile",
			values:          values(20, 20),
			wantRanks:       []int{1, 1},
			wantPercentiles: []float64{100, 100},
		},
		{
			name:            "tie group then next rank skips",
			values:          values(50, 50, 30),
			wantRanks:       []int{1, 1, 3},
			wantPercentiles: []float64{100, 100, 0},
		},
		{
			name:            "1 2 2 4 pattern",
			values:          values(100, 80, 80, 60),
			wantRanks:       []int{1, 2, 2, 4},
			wantPercentiles: []float64{100, 66.67, 66.67, 0},
		},
		{
			name:            "all distinct",
			values:          values(40, 30, 20, 10, 5),
			wantRanks:       []int{1, 2, 3, 4, 5},
			wantPercentiles: []float64{100, 75, 50, 25, 0},
		},
		{
			name:            "empty input",
			values:          nil,
			wantRanks:       []int{},
			wantPercentiles: []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranks := Rank(testBoard, tt.values, now)

			assert.Len(t, ranks, len(tt.wantRanks))
			for i, r := range ranks {
				assert.Equal(t, tt.wantRanks[i], r.Rank, "rank at index %d", i)
				assert.InDelta(t, tt.wantPercentiles[i], r.Percentile, 0.001, "percentile at index %d", i)
				assert.Equal(t, tt.values[i].UserID, r.UserID)
				assert.Equal(t, testBoard.Window, r.Window)
				assert.Equal(t, testBoard.Category, r.Category)
				assert.Equal(t, now, r.UpdatedAt)
			}
		})
	}
}

func TestRank_StableUnderEqualValues(t *testing.T) {
	// Equal-valued entries keep their input order and identical rank/percentile
	now := time.Now()
	input := []domain.MetricValue{
		{UserID: "first", Value: 50},
		{UserID: "second", Value: 50},
		{UserID: "third", Value: 30},
	}

	ranks := Rank(testBoard, input, now)

	assert.Equal(t, "first", ranks[0].UserID)
	assert.Equal(t, "second", ranks[1].UserID)
	assert.Equal(t, ranks[0].Rank, ranks[1].Rank)
	assert.Equal(t, ranks[0].Percentile, ranks[1].Percentile)
}

func TestTopEntries(t *testing.T) {
	now := time.Now()
	ranks := Rank(testBoard, values(30, 20, 10), now)

	t.Run("truncates to limit", func(t *testing.T) {
		entries := TopEntries(ranks, 2)
		assert.Len(t, entries, 2)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, 30.0, entries[0].MetricValue)
	})

	t.Run("limit beyond length returns all", func(t *testing.T) {
		entries := TopEntries(ranks, 100)
		assert.Len(t, entries, 3)
	})
}

func TestEligibilityCutoff(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window domain.Window
		want   time.Time
	}{
		{domain.Window1W, now.Add(-RecencyCutoff1w)},
		{domain.Window1M, now.Add(-RecencyCutoff1m)},
		{domain.Window1Y, now.Add(-RecencyCutoff1y)},
		{domain.WindowYTD, now.Add(-RecencyCutoff1y)},
		{domain.WindowAllTime, now.Add(-RecencyCutoffAllTime)},
	}

	for _, tt := range tests {
		t.Run(string(tt.window), func(t *testing.T) {
			assert.Equal(t, tt.want, EligibilityCutoff(tt.window, now))
		})
	}
}
