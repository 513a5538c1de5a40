package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Genres is a list of genre names. It is stored as a PostgreSQL array
// literal, natively on PostgreSQL and as text elsewhere.
type Genres []string

// Value implements driver.Valuer. A nil list is stored as "{}".
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "{}", nil
	}
	return pq.StringArray(g).Value()
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*g = Genres{}
	case []byte:
		*g = ParseGenres(string(v))
	case string:
		*g = ParseGenres(v)
	default:
		return fmt.Errorf("model: cannot scan %T into Genres", src)
	}
	return nil
}

// String joins the genres with ", ".
func (g Genres) String() string {
	return strings.Join(g, ", ")
}

// ParseGenres parses an array literal such as {"Jazz","Rock n Roll"}.
// Legacy unquoted forms ({Jazz,Rock} or Jazz,Rock) are accepted as well.
// Empty elements are dropped.
func ParseGenres(raw string) Genres {
	raw = strings.TrimSpace(raw)
	out := Genres{}
	if raw == "" {
		return out
	}
	if strings.HasPrefix(raw, "{") {
		var arr pq.StringArray
		if err := arr.Scan(raw); err == nil {
			for _, s := range arr {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
		raw = strings.Trim(raw, "{}")
	}
	for _, p := range strings.Split(raw, ",") {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
