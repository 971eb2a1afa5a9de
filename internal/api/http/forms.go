package httpapi

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/keante032/SB-Capstone1/internal/weather"
)

var validate = validator.New()

// FieldError is a user-facing problem with one form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// fieldCheck validates one field value against a validator tag.
type fieldCheck struct {
	field   string
	value   any
	tag     string
	message string
}

// runChecks applies checks in order, keeping only the first failure per
// field.
func runChecks(checks ...fieldCheck) []FieldError {
	var errs []FieldError
	failed := make(map[string]bool)
	for _, ch := range checks {
		if failed[ch.field] {
			continue
		}
		if err := validate.Var(ch.value, ch.tag); err != nil {
			failed[ch.field] = true
			errs = append(errs, FieldError{Field: ch.field, Message: ch.message})
		}
	}
	return errs
}

// searchForm is the location search input. Either q or both lat and long.
type searchForm struct {
	Q    string `json:"q" query:"q"`
	Lat  string `json:"lat" query:"lat"`
	Long string `json:"long" query:"long"`
}

var coordPair = regexp.MustCompile(`^\s*([-+]?\d+(?:\.\d+)?)\s*,\s*([-+]?\d+(?:\.\d+)?)\s*$`)

// query validates the form and builds the search query. A q of the form
// "lat,long" is treated as coordinates.
func (f searchForm) query() (weather.Query, []FieldError) {
	lat, long := strings.TrimSpace(f.Lat), strings.TrimSpace(f.Long)
	q := strings.TrimSpace(f.Q)

	if lat != "" || long != "" {
		return coordsQuery("lat", lat, "long", long)
	}
	if m := coordPair.FindStringSubmatch(q); m != nil {
		return coordsQuery("q", m[1], "q", m[2])
	}

	errs := runChecks(
		fieldCheck{"q", q, "required", "Enter coordinates, a city or an address."},
		fieldCheck{"q", q, "max=200", "Search text is too long."},
	)
	if len(errs) > 0 {
		return weather.Query{}, errs
	}
	return weather.TextQuery(q), nil
}

func coordsQuery(latField, latRaw, longField, longRaw string) (weather.Query, []FieldError) {
	errs := runChecks(
		fieldCheck{latField, latRaw, "required", "Latitude is required."},
		fieldCheck{latField, latRaw, "numeric", "Latitude must be a number."},
		fieldCheck{longField, longRaw, "required", "Longitude is required."},
		fieldCheck{longField, longRaw, "numeric", "Longitude must be a number."},
	)
	if len(errs) > 0 {
		return weather.Query{}, errs
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	long, longErr := strconv.ParseFloat(longRaw, 64)
	if latErr != nil {
		errs = append(errs, FieldError{Field: latField, Message: "Latitude must be a number."})
	}
	if longErr != nil {
		errs = append(errs, FieldError{Field: longField, Message: "Longitude must be a number."})
	}
	if len(errs) > 0 {
		return weather.Query{}, errs
	}

	errs = runChecks(
		fieldCheck{latField, lat, "gte=-90,lte=90", "Latitude must be between -90 and 90."},
		fieldCheck{longField, long, "gte=-180,lte=180", "Longitude must be between -180 and 180."},
	)
	if len(errs) > 0 {
		return weather.Query{}, errs
	}
	return weather.CoordsQuery(lat, long), nil
}

// credentialsForm is shared by registration and login.
type credentialsForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (f credentialsForm) validateRegister() []FieldError {
	email := strings.TrimSpace(f.Email)
	return runChecks(
		fieldCheck{"email", email, "required", "Email is required."},
		fieldCheck{"email", email, "email", "Enter a valid email address."},
		fieldCheck{"email", email, "max=254", "Email is too long."},
		fieldCheck{"password", f.Password, "required", "Password is required."},
		fieldCheck{"password", f.Password, "max=72", "Password must be at most 72 characters."},
	)
}

func (f credentialsForm) validateLogin() []FieldError {
	return runChecks(
		fieldCheck{"email", strings.TrimSpace(f.Email), "required", "Email is required."},
		fieldCheck{"password", f.Password, "required", "Password is required."},
	)
}

// echo returns the form for re-rendering, without the password.
func (f credentialsForm) echo() map[string]string {
	return map[string]string{"email": f.Email}
}

func (f searchForm) echo() map[string]string {
	return map[string]string{"q": f.Q, "lat": f.Lat, "long": f.Long}
}
