package view

import (
	"html/template"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/form"
)

// Date layouts of the datetime template function.
const (
	LayoutFull   = "Monday January, 2, 2006 at 3:04PM"
	LayoutMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders t in loc. format is "full", "medium" or a Go
// layout; anything else falls back to medium.
func FormatDateTime(t time.Time, format string, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	layout := LayoutMedium
	switch format {
	case "full":
		layout = LayoutFull
	case "", "medium":
	default:
		if strings.ContainsAny(format, "0123456789") {
			layout = format
		}
	}
	return t.In(loc).Format(layout)
}

// Funcs returns the template function map.
func Funcs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"datetime": func(t time.Time, format ...string) string {
			f := "medium"
			if len(format) > 0 {
				f = format[0]
			}
			return FormatDateTime(t, f, loc)
		},
		"join": func(list []string, sep string) string {
			return strings.Join(list, sep)
		},
		"contains": func(list []string, s string) bool {
			for _, v := range list {
				if v == s {
					return true
				}
			}
			return false
		},
		"states": func() []string { return form.StateChoices },
		"genres": func() []string { return form.GenreChoices },
	}
}
