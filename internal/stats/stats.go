// Package stats derives completion statistics from a task's progress ledger.
// Everything here is pure: callers pass the entry dates already loaded plus
// an explicit "today", so the computations need no clock or database.
package stats

import (
	"math"
	"sort"
	"time"
)

// DateLayout is the calendar-date form used throughout the ledger.
const DateLayout = "2006-01-02"

// Stats holds the derived numbers for one task. They are recomputed on every
// read and never persisted.
type Stats struct {
	AchievedDays      int `json:"achievedDays"`
	CompletionPercent int `json:"completionPercentage"`
	CurrentStreak     int `json:"currentStreak"`
	LongestStreak     int `json:"longestStreak"`
}

// Compute derives all statistics for a ledger of entry dates and a cycle
// length. Dates that do not parse as YYYY-MM-DD are ignored.
func Compute(dates []string, cycleLength int, today time.Time) Stats {
	valid := parseDates(dates)
	return Stats{
		AchievedDays:      len(valid),
		CompletionPercent: CompletionPercent(len(valid), cycleLength),
		CurrentStreak:     currentStreak(valid, today),
		LongestStreak:     longestStreak(valid),
	}
}

// CompletionPercent is round(achieved/cycle*100) clamped to [0, 100].
// A zero or negative cycle length yields 0 rather than dividing by zero.
func CompletionPercent(achievedDays, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	if achievedDays < 0 {
		achievedDays = 0
	}
	pct := int(math.Round(float64(achievedDays) / float64(cycleLength) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// CurrentStreak counts consecutive entry days walking backward from today.
// The anchor is strictly today: with no entry for today the streak is 0 even
// if an unbroken run ended yesterday.
func CurrentStreak(dates []string, today time.Time) int {
	return currentStreak(parseDates(dates), today)
}

// LongestStreak is the longest run of consecutive calendar dates anywhere in
// the ledger.
func LongestStreak(dates []string) int {
	return longestStreak(parseDates(dates))
}

func parseDates(dates []string) map[string]time.Time {
	valid := make(map[string]time.Time, len(dates))
	for _, d := range dates {
		t, err := time.Parse(DateLayout, d)
		if err != nil {
			continue
		}
		valid[t.Format(DateLayout)] = t
	}
	return valid
}

func currentStreak(entries map[string]time.Time, today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	for {
		if _, ok := entries[day.Format(DateLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

func longestStreak(entries map[string]time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	days := make([]time.Time, 0, len(entries))
	for _, t := range entries {
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
