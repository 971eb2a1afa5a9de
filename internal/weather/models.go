package weather

import (
	"fmt"
	"strings"
	"time"

	"github.com/keante032/SB-Capstone1/internal/common"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Valid coordinate bounds, inclusive.
const (
	MinLat  = -90.0
	MaxLat  = 90.0
	MinLong = -180.0
	MaxLong = 180.0
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Valid reports whether both values lie within the closed coordinate ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= MinLat && c.Lat <= MaxLat && c.Long >= MinLong && c.Long <= MaxLong
}

// String returns "lat,long", the form upstream APIs accept as a query.
func (c Coordinates) String() string {
	return common.FormatCoord(c.Lat) + "," + common.FormatCoord(c.Long)
}

// Label returns the "lat, long" display form.
func (c Coordinates) Label() string {
	return common.FormatCoord(c.Lat) + ", " + common.FormatCoord(c.Long)
}

// Location is a stored, deduplicated geographic point.
type Location struct {
	ID      int64   `json:"id"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Long    float64 `json:"long"`
}

// Coordinates returns the location's coordinate pair.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Long: l.Long}
}

// DisplayLabel is the address, falling back to "lat, long".
func (l Location) DisplayLabel() string {
	if strings.TrimSpace(l.Address) != "" {
		return l.Address
	}
	return l.Coordinates().Label()
}

// Query is a location search: either free text or a coordinate pair.
// Coords takes precedence when set.
type Query struct {
	Text   string
	Coords *Coordinates
}

// TextQuery builds a free-text query.
func TextQuery(text string) Query {
	return Query{Text: text}
}

// CoordsQuery builds a coordinate query.
func CoordsQuery(lat, long float64) Query {
	return Query{Coords: &Coordinates{Lat: lat, Long: long}}
}

// IsCoords reports whether q is a coordinate query.
func (q Query) IsCoords() bool {
	return q.Coords != nil
}

// String returns the query as sent upstream.
func (q Query) String() string {
	if q.Coords != nil {
		return q.Coords.String()
	}
	return strings.TrimSpace(q.Text)
}

// Validate checks coordinate bounds, or that text is not blank.
func (q Query) Validate() error {
	if q.Coords != nil {
		if !q.Coords.Valid() {
			return fmt.Errorf("%w: coordinates %s out of range", common.ErrInvalidQuery, q.Coords)
		}
		return nil
	}
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: empty search", common.ErrInvalidQuery)
	}
	return nil
}

// Resolution is what a provider or geocoder returns for a query.
type Resolution struct {
	Address string
	Coordinates
}

// DailyReading is one provider forecast day, normalized.
type DailyReading struct {
	Date            time.Time `json:"date"` // midnight UTC of the forecast day
	TempMaxC        float64   `json:"tempMaxC"`
	TempMinC        float64   `json:"tempMinC"`
	PrecipChancePct float64   `json:"precipChancePct"`
	Summary         string    `json:"summary,omitempty"`
	Condition       Condition `json:"condition"`
}

// ForecastDay is a DailyReading prepared for display.
type ForecastDay struct {
	Date            string    `json:"date"`  // 2006-01-02
	Label           string    `json:"label"` // Mon, Jan 2
	TempMaxC        float64   `json:"tempMaxC"`
	TempMinC        float64   `json:"tempMinC"`
	PrecipChancePct float64   `json:"precipChancePct"`
	Summary         string    `json:"summary,omitempty"`
	Condition       Condition `json:"condition"`
}

// ForecastView is the presenter's output for one location.
type ForecastView struct {
	Location Location      `json:"location"`
	Label    string        `json:"label"`
	Provider string        `json:"provider"`
	Days     []ForecastDay `json:"days"`
}
