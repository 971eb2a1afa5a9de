package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateDaily(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2024, 5, day, hour, 0, 0, 0, time.UTC)
	}

	samples := []Sample{
		{Time: at(2, 9), TempMinC: 10, TempMaxC: 14, Condition: ConditionCloudy, Summary: "clouds"},
		{Time: at(1, 0), TempMinC: 3, TempMaxC: 5, PrecipChancePct: 20, Condition: ConditionRain, Summary: "drizzle"},
		{Time: at(1, 6), TempMinC: 1, TempMaxC: 6, PrecipChancePct: 80, Condition: ConditionRain, Summary: "rain"},
		{Time: at(1, 12), TempMinC: 4, TempMaxC: 11, Condition: ConditionClear},
		{Time: at(2, 12), TempMinC: 12, TempMaxC: 18, Condition: ConditionClear, Summary: "sun"},
	}

	days := AggregateDaily(samples)
	require.Len(t, days, 2)

	assert.Equal(t, at(1, 0), days[0].Date)
	assert.Equal(t, 1.0, days[0].TempMinC)
	assert.Equal(t, 11.0, days[0].TempMaxC)
	assert.Equal(t, 80.0, days[0].PrecipChancePct)
	assert.Equal(t, ConditionRain, days[0].Condition)
	assert.Equal(t, "drizzle", days[0].Summary)

	// One cloudy and one clear step: the first seen wins the tie.
	assert.Equal(t, at(2, 0), days[1].Date)
	assert.Equal(t, ConditionCloudy, days[1].Condition)
	assert.Equal(t, 10.0, days[1].TempMinC)
	assert.Equal(t, 18.0, days[1].TempMaxC)
}

func TestAggregateDaily_Empty(t *testing.T) {
	days := AggregateDaily(nil)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestAggregateDaily_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	days := AggregateDaily([]Sample{{Time: time.Date(2024, 5, 2, 5, 0, 0, 0, loc)}})

	require.Len(t, days, 1)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, ConditionUnknown, days[0].Condition)
}
