// Package leaderboard turns flat collections of lap records into ranked
// leaderboards and summary statistics. Everything here is a pure function
// over caller-owned data; no I/O, no shared state.
package leaderboard

import (
	"sort"
	"time"
)

// Lap is the minimal lap record the aggregation needs.
// A nil BuildID means the lap was set without a build and groups separately
// from any build.
type Lap struct {
	ID        uint
	UserID    uint
	CarID     uint
	BuildID   *uint
	TrackID   *uint
	TimeMs    int
	CreatedAt time.Time
}

// Entry is one ranked (user, car, build) group
type Entry struct {
	Position        int
	UserID          uint
	CarID           uint
	BuildID         *uint
	BestTimeMs      int
	TotalLaps       int
	LastImprovement time.Time
}

// Stats holds aggregate statistics over the full input set, independent of
// how many entries the leaderboard displays
type Stats struct {
	TotalLaps     int
	FastestTimeMs *int
	AverageTimeMs *int
	UniqueDrivers int
	UniqueTracks  int
}

// Result is a ranked leaderboard plus statistics
type Result struct {
	Entries []Entry
	Stats   Stats
}

// DefaultTopN is the number of entries shown on the leaderboard view
const DefaultTopN = 10

type groupKey struct {
	userID   uint
	carID    uint
	buildID  uint
	hasBuild bool
}

func keyFor(lap Lap) groupKey {
	k := groupKey{userID: lap.UserID, carID: lap.CarID}
	if lap.BuildID != nil {
		k.buildID = *lap.BuildID
		k.hasBuild = true
	}
	return k
}

// Aggregate groups laps by (user, car, build), ranks groups ascending by
// personal best and returns the top topN entries plus statistics over the
// full input. topN <= 0 disables truncation. Empty input yields an empty
// entry list and nil numeric statistics.
func Aggregate(laps []Lap, topN int) Result {
	groups := make(map[groupKey]*Entry)
	order := make([]groupKey, 0)

	for _, lap := range laps {
		k := keyFor(lap)
		g, ok := groups[k]
		if !ok {
			groups[k] = &Entry{
				UserID:          lap.UserID,
				CarID:           lap.CarID,
				BuildID:         lap.BuildID,
				BestTimeMs:      lap.TimeMs,
				TotalLaps:       1,
				LastImprovement: lap.CreatedAt,
			}
			order = append(order, k)
			continue
		}
		g.TotalLaps++
		switch {
		case lap.TimeMs < g.BestTimeMs:
			g.BestTimeMs = lap.TimeMs
			g.LastImprovement = lap.CreatedAt
		case lap.TimeMs == g.BestTimeMs && lap.CreatedAt.Before(g.LastImprovement):
			// The record is attributed to the earliest lap that set it
			g.LastImprovement = lap.CreatedAt
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, k := range order {
		entries = append(entries, *groups[k])
	}

	// Ties break by earliest record, then by first-seen input order
	// (stable sort over the insertion-ordered slice).
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].BestTimeMs != entries[j].BestTimeMs {
			return entries[i].BestTimeMs < entries[j].BestTimeMs
		}
		return entries[i].LastImprovement.Before(entries[j].LastImprovement)
	})

	for i := range entries {
		entries[i].Position = i + 1
	}

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}

	return Result{
		Entries: entries,
		Stats:   computeStats(laps),
	}
}

func computeStats(laps []Lap) Stats {
	stats := Stats{TotalLaps: len(laps)}
	if len(laps) == 0 {
		return stats
	}

	fastest := laps[0].TimeMs
	sum := 0
	drivers := make(map[uint]struct{})
	tracks := make(map[uint]struct{})

	for _, lap := range laps {
		if lap.TimeMs < fastest {
			fastest = lap.TimeMs
		}
		sum += lap.TimeMs
		drivers[lap.UserID] = struct{}{}
		if lap.TrackID != nil {
			tracks[*lap.TrackID] = struct{}{}
		}
	}

	// Round half up to the nearest millisecond
	avg := (sum + len(laps)/2) / len(laps)

	stats.FastestTimeMs = &fastest
	stats.AverageTimeMs = &avg
	stats.UniqueDrivers = len(drivers)
	stats.UniqueTracks = len(tracks)
	return stats
}

// TrackSummary is one track's personal-best summary for a car detail view
type TrackSummary struct {
	TrackID    *uint
	BestTimeMs int
	TotalLaps  int
	RecentLaps []Lap
}

// DefaultRecentLaps is how many recent laps each track summary carries
const DefaultRecentLaps = 5

// TrackBests groups laps solely by track (ignoring build), keeping for each
// track the personal best, lap count and the recentN most recent laps.
// Laps without a track form their own group. recentN <= 0 falls back to
// DefaultRecentLaps.
func TrackBests(laps []Lap, recentN int) []TrackSummary {
	if recentN <= 0 {
		recentN = DefaultRecentLaps
	}

	type trackKey struct {
		id       uint
		hasTrack bool
	}

	groups := make(map[trackKey]*TrackSummary)
	buckets := make(map[trackKey][]Lap)
	order := make([]trackKey, 0)

	for _, lap := range laps {
		k := trackKey{}
		if lap.TrackID != nil {
			k = trackKey{id: *lap.TrackID, hasTrack: true}
		}
		g, ok := groups[k]
		if !ok {
			groups[k] = &TrackSummary{
				TrackID:    lap.TrackID,
				BestTimeMs: lap.TimeMs,
				TotalLaps:  1,
			}
			order = append(order, k)
		} else {
			g.TotalLaps++
			if lap.TimeMs < g.BestTimeMs {
				g.BestTimeMs = lap.TimeMs
			}
		}
		buckets[k] = append(buckets[k], lap)
	}

	out := make([]TrackSummary, 0, len(order))
	for _, k := range order {
		g := *groups[k]
		recent := append([]Lap(nil), buckets[k]...)
		sort.SliceStable(recent, func(i, j int) bool {
			return recent[i].CreatedAt.After(recent[j].CreatedAt)
		})
		if len(recent) > recentN {
			recent = recent[:recentN]
		}
		g.RecentLaps = recent
		out = append(out, g)
	}
	return out
}
