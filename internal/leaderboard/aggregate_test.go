package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func ts(offset int) time.Time {
	base := time.Date(2026, 3, 6, 20, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(offset) * time.Minute)
}

func TestAggregateGroupsByUserCarBuild(t *testing.T) {
	laps := []Lap{
		{ID: 1, UserID: 1, CarID: 1, BuildID: uintPtr(1), TimeMs: 90000, CreatedAt: ts(0)},
		{ID: 2, UserID: 1, CarID: 1, BuildID: uintPtr(1), TimeMs: 88000, CreatedAt: ts(1)},
		{ID: 3, UserID: 2, CarID: 1, BuildID: nil, TimeMs: 95000, CreatedAt: ts(2)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.Len(t, result.Entries, 2)

	first := result.Entries[0]
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, uint(1), first.UserID)
	require.NotNil(t, first.BuildID)
	assert.Equal(t, uint(1), *first.BuildID)
	assert.Equal(t, 88000, first.BestTimeMs)
	assert.Equal(t, 2, first.TotalLaps)
	assert.Equal(t, ts(1), first.LastImprovement)

	second := result.Entries[1]
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, uint(2), second.UserID)
	assert.Nil(t, second.BuildID)
	assert.Equal(t, 95000, second.BestTimeMs)
	assert.Equal(t, 1, second.TotalLaps)

	stats := result.Stats
	assert.Equal(t, 3, stats.TotalLaps)
	require.NotNil(t, stats.FastestTimeMs)
	assert.Equal(t, 88000, *stats.FastestTimeMs)
	require.NotNil(t, stats.AverageTimeMs)
	assert.Equal(t, 91000, *stats.AverageTimeMs)
	assert.Equal(t, 2, stats.UniqueDrivers)
}

func TestAggregateNilBuildGroupsSeparately(t *testing.T) {
	laps := []Lap{
		{UserID: 1, CarID: 1, BuildID: uintPtr(7), TimeMs: 90000, CreatedAt: ts(0)},
		{UserID: 1, CarID: 1, BuildID: nil, TimeMs: 89000, CreatedAt: ts(1)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.Len(t, result.Entries, 2)
	assert.Nil(t, result.Entries[0].BuildID)
	assert.Equal(t, 89000, result.Entries[0].BestTimeMs)
	require.NotNil(t, result.Entries[1].BuildID)
	assert.Equal(t, 90000, result.Entries[1].BestTimeMs)
}

func TestAggregateTieBreaksByEarliestRecord(t *testing.T) {
	// Same best time; driver 2 set it first and should rank higher.
	laps := []Lap{
		{UserID: 1, CarID: 1, TimeMs: 88000, CreatedAt: ts(5)},
		{UserID: 2, CarID: 1, TimeMs: 88000, CreatedAt: ts(1)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, uint(2), result.Entries[0].UserID)
	assert.Equal(t, uint(1), result.Entries[1].UserID)
}

func TestAggregateRecordAttributedToEarliestEqualLap(t *testing.T) {
	// The same driver matches their own best later; the record keeps the
	// earlier timestamp.
	laps := []Lap{
		{UserID: 1, CarID: 1, TimeMs: 88000, CreatedAt: ts(3)},
		{UserID: 1, CarID: 1, TimeMs: 88000, CreatedAt: ts(8)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, ts(3), result.Entries[0].LastImprovement)
	assert.Equal(t, 2, result.Entries[0].TotalLaps)
}

func TestAggregatePositionsAreMonotonic(t *testing.T) {
	laps := []Lap{
		{UserID: 3, CarID: 1, TimeMs: 97000, CreatedAt: ts(0)},
		{UserID: 1, CarID: 1, TimeMs: 91000, CreatedAt: ts(1)},
		{UserID: 2, CarID: 1, TimeMs: 94000, CreatedAt: ts(2)},
		{UserID: 4, CarID: 1, TimeMs: 99000, CreatedAt: ts(3)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.Len(t, result.Entries, 4)
	for i, entry := range result.Entries {
		assert.Equal(t, i+1, entry.Position)
		if i > 0 {
			assert.GreaterOrEqual(t, entry.BestTimeMs, result.Entries[i-1].BestTimeMs)
		}
	}
}

func TestAggregateTruncatesToTopN(t *testing.T) {
	laps := make([]Lap, 0, 15)
	for i := 0; i < 15; i++ {
		laps = append(laps, Lap{
			UserID:    uint(i + 1),
			CarID:     1,
			TimeMs:    90000 + i*100,
			CreatedAt: ts(i),
		})
	}

	result := Aggregate(laps, DefaultTopN)

	assert.Len(t, result.Entries, DefaultTopN)
	// Statistics still cover the full input, not just the visible entries.
	assert.Equal(t, 15, result.Stats.TotalLaps)
	assert.Equal(t, 15, result.Stats.UniqueDrivers)
}

func TestAggregateTopNZeroDisablesTruncation(t *testing.T) {
	laps := make([]Lap, 0, 12)
	for i := 0; i < 12; i++ {
		laps = append(laps, Lap{UserID: uint(i + 1), CarID: 1, TimeMs: 90000 + i, CreatedAt: ts(i)})
	}

	result := Aggregate(laps, 0)
	assert.Len(t, result.Entries, 12)
}

func TestAggregateEmptyInput(t *testing.T) {
	result := Aggregate(nil, DefaultTopN)

	assert.Empty(t, result.Entries)
	assert.Equal(t, 0, result.Stats.TotalLaps)
	assert.Nil(t, result.Stats.FastestTimeMs)
	assert.Nil(t, result.Stats.AverageTimeMs)
	assert.Equal(t, 0, result.Stats.UniqueDrivers)
	assert.Equal(t, 0, result.Stats.UniqueTracks)
}

func TestAggregateAverageRoundsHalfUp(t *testing.T) {
	laps := []Lap{
		{UserID: 1, CarID: 1, TimeMs: 90000, CreatedAt: ts(0)},
		{UserID: 1, CarID: 1, TimeMs: 90001, CreatedAt: ts(1)},
	}

	result := Aggregate(laps, DefaultTopN)

	require.NotNil(t, result.Stats.AverageTimeMs)
	assert.Equal(t, 90001, *result.Stats.AverageTimeMs)
}

func TestAggregateUniqueTracksIgnoresNil(t *testing.T) {
	laps := []Lap{
		{UserID: 1, CarID: 1, TrackID: uintPtr(1), TimeMs: 90000, CreatedAt: ts(0)},
		{UserID: 1, CarID: 1, TrackID: uintPtr(1), TimeMs: 91000, CreatedAt: ts(1)},
		{UserID: 1, CarID: 1, TrackID: uintPtr(2), TimeMs: 92000, CreatedAt: ts(2)},
		{UserID: 1, CarID: 1, TrackID: nil, TimeMs: 93000, CreatedAt: ts(3)},
	}

	result := Aggregate(laps, DefaultTopN)
	assert.Equal(t, 2, result.Stats.UniqueTracks)
}

func TestTrackBestsGroupsByTrackOnly(t *testing.T) {
	laps := []Lap{
		{ID: 1, UserID: 1, CarID: 1, TrackID: uintPtr(1), BuildID: uintPtr(9), TimeMs: 90000, CreatedAt: ts(0)},
		{ID: 2, UserID: 1, CarID: 1, TrackID: uintPtr(1), BuildID: nil, TimeMs: 88000, CreatedAt: ts(1)},
		{ID: 3, UserID: 1, CarID: 1, TrackID: nil, TimeMs: 92000, CreatedAt: ts(2)},
	}

	summaries := TrackBests(laps, DefaultRecentLaps)

	require.Len(t, summaries, 2)

	withTrack := summaries[0]
	require.NotNil(t, withTrack.TrackID)
	assert.Equal(t, uint(1), *withTrack.TrackID)
	assert.Equal(t, 88000, withTrack.BestTimeMs)
	assert.Equal(t, 2, withTrack.TotalLaps)

	noTrack := summaries[1]
	assert.Nil(t, noTrack.TrackID)
	assert.Equal(t, 92000, noTrack.BestTimeMs)
	assert.Equal(t, 1, noTrack.TotalLaps)
}

func TestTrackBestsRecentLapsNewestFirst(t *testing.T) {
	laps := make([]Lap, 0, 8)
	for i := 0; i < 8; i++ {
		laps = append(laps, Lap{
			ID:        uint(i + 1),
			UserID:    1,
			CarID:     1,
			TrackID:   uintPtr(1),
			TimeMs:    90000 + i,
			CreatedAt: ts(i),
		})
	}

	summaries := TrackBests(laps, 5)

	require.Len(t, summaries, 1)
	recent := summaries[0].RecentLaps
	require.Len(t, recent, 5)
	assert.Equal(t, uint(8), recent[0].ID)
	for i := 1; i < len(recent); i++ {
		assert.True(t, !recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}
}
