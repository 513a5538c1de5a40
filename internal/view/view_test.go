package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/iliyamo/fyyur/internal/session"
)

func TestFormatDateTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	tests := []struct {
		format string
		loc    *time.Location
		want   string
	}{
		{"full", time.UTC, "Sunday April, 1, 2035 at 8:00PM"},
		{"medium", time.UTC, "Sun 04, 01, 2035 8:00PM"},
		{"", time.UTC, "Sun 04, 01, 2035 8:00PM"},
		{"bogus", time.UTC, "Sun 04, 01, 2035 8:00PM"},
		{"2006-01-02", time.UTC, "2035-04-01"},
		{"full", time.FixedZone("X", -3*3600), "Sunday April, 1, 2035 at 5:00PM"},
	}
	for _, tt := range tests {
		if got := FormatDateTime(ts, tt.format, tt.loc); got != tt.want {
			t.Fatalf("FormatDateTime(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
	if got := FormatDateTime(time.Time{}, "full", time.UTC); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}
}

func TestAllPagesParse(t *testing.T) {
	t.Parallel()

	r, err := New(time.UTC)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, name := range []string{
		"pages/home", "pages/venues", "pages/artists", "pages/search_venues", "pages/search_artists",
		"pages/show_venue", "pages/show_artist", "pages/shows",
		"forms/new_venue", "forms/edit_venue", "forms/new_artist", "forms/edit_artist", "forms/new_show",
		"errors/404", "errors/500",
	} {
		if !r.Has(name) {
			t.Fatalf("template %q not registered", name)
		}
	}
}

func TestRenderLayoutShowsMessages(t *testing.T) {
	t.Parallel()

	r, err := New(time.UTC)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	page := &Page{
		Title:   "Home",
		Section: "artists",
		Messages: []session.Message{
			{Category: session.CategoryMessage, Text: "Artist X was successfully listed!"},
			{Category: session.CategoryError, Text: "Error in the Name field - This field is required."},
		},
	}
	if err := r.Render(&buf, "pages/home", page, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Find(".alert-info").Text(); got != "Artist X was successfully listed!" {
		t.Fatalf("info alert = %q", got)
	}
	if got := doc.Find(".alert-error").Length(); got != 1 {
		t.Fatalf("error alerts = %d, want 1", got)
	}
	if action, _ := doc.Find("form.search").Attr("action"); action != "/artists/search" {
		t.Fatalf("search action = %q, want /artists/search", action)
	}
	if title := doc.Find("title").Text(); title != "Home | Fyyur" {
		t.Fatalf("title = %q", title)
	}

	if err := r.Render(&buf, "pages/nope", page, nil); err == nil {
		t.Fatal("Render(unknown) error = nil")
	}
}
