package weather

import (
	"slices"
	"time"
)

// Sample is one sub-daily forecast step, as returned by providers that
// forecast in hourly or 3-hourly steps.
type Sample struct {
	Time            time.Time
	TempMinC        float64
	TempMaxC        float64
	PrecipChancePct float64
	Summary         string
	Condition       Condition
}

// AggregateDaily combines samples into one reading per UTC calendar day,
// ordered by date. Temperatures are the day's extremes and precipitation
// chance its maximum; the condition is selected by majority, and ties go to
// the condition seen first that day.
func AggregateDaily(samples []Sample) []DailyReading {
	type bucket struct {
		reading DailyReading
		counts  map[Condition]int
		order   []Condition
		summary map[Condition]string
	}

	var days []*bucket
	byDay := make(map[time.Time]*bucket)

	for _, s := range samples {
		t := s.Time.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

		b, ok := byDay[day]
		if !ok {
			b = &bucket{
				reading: DailyReading{
					Date:            day,
					TempMinC:        s.TempMinC,
					TempMaxC:        s.TempMaxC,
					PrecipChancePct: s.PrecipChancePct,
				},
				counts:  make(map[Condition]int),
				summary: make(map[Condition]string),
			}
			byDay[day] = b
			days = append(days, b)
		}

		r := &b.reading
		r.TempMinC = min(r.TempMinC, s.TempMinC)
		r.TempMaxC = max(r.TempMaxC, s.TempMaxC)
		r.PrecipChancePct = max(r.PrecipChancePct, s.PrecipChancePct)

		cond := s.Condition
		if cond == "" {
			cond = ConditionUnknown
		}
		if b.counts[cond] == 0 {
			b.order = append(b.order, cond)
			b.summary[cond] = s.Summary
		}
		b.counts[cond]++
	}

	out := make([]DailyReading, 0, len(days))
	for _, b := range days {
		// Pick majority condition.
		best, bestCount := ConditionUnknown, 0
		for _, cond := range b.order {
			if b.counts[cond] > bestCount {
				best, bestCount = cond, b.counts[cond]
			}
		}
		b.reading.Condition = best
		b.reading.Summary = b.summary[best]
		out = append(out, b.reading)
	}

	slices.SortStableFunc(out, func(a, b DailyReading) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
