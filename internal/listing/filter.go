package listing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const dateLayout = "2006-01-02"

// GeoPoint is a radius-from-point predicate in kilometers.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

// Filter is a conjunction of optional predicates. Nil or empty fields are no-ops.
type Filter struct {
	Keywords   []string
	Date       *time.Time
	Location   string
	Geo        *GeoPoint
	CategoryID *uint
	IsPaid     *bool
}

// FilterParams are the raw query parameters a Filter is parsed from.
type FilterParams struct {
	Keyword    string
	Date       string
	Location   string
	Radius     string
	Latitude   string
	Longitude  string
	CategoryID string
	IsPaid     string
}

// ParseFilter builds a Filter from raw parameters. Unparseable values drop their
// predicate, except a malformed date which is reported.
func ParseFilter(p FilterParams, loc *time.Location) (Filter, error) {
	var f Filter
	f.Keywords = Tokenize(p.Keyword)

	if raw := strings.TrimSpace(p.Date); raw != "" {
		if loc == nil {
			loc = time.UTC
		}
		d, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			return Filter{}, fmt.Errorf("date must be formatted as YYYY-MM-DD")
		}
		f.Date = &d
	}

	f.Location = strings.ToLower(strings.TrimSpace(p.Location))

	radius, rOK := parseFinite(p.Radius)
	lat, latOK := parseFinite(p.Latitude)
	lng, lngOK := parseFinite(p.Longitude)
	if rOK && latOK && lngOK {
		f.Geo = &GeoPoint{Latitude: lat, Longitude: lng, RadiusKM: radius}
	}

	if id, err := strconv.ParseUint(strings.TrimSpace(p.CategoryID), 10, 64); err == nil {
		c := uint(id)
		f.CategoryID = &c
	}

	switch strings.ToLower(strings.TrimSpace(p.IsPaid)) {
	case "free":
		paid := false
		f.IsPaid = &paid
	case "paid":
		paid := true
		f.IsPaid = &paid
	}
	return f, nil
}

// Tokenize splits a keyword into lower-case alphanumeric tokens.
func Tokenize(keyword string) []string {
	fields := strings.FieldsFunc(strings.ToLower(keyword), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// TSQuery renders the keywords as a postgres tsquery matching any token.
func (f Filter) TSQuery() string {
	return strings.Join(f.Keywords, " | ")
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return len(f.Keywords) == 0 && f.Date == nil && f.Location == "" &&
		f.Geo == nil && f.CategoryID == nil && f.IsPaid == nil
}

// parseFinite parses raw as a float, rejecting NaN and infinities.
func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
