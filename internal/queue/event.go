// Package queue defines the activity events exchanged over the message
// broker and the background consumer that records them.
package queue

import (
    "fmt"
    "time"

    "github.com/google/uuid"
)

// Event types. The entity is the part before the dot.
const (
    VenueCreated  = "venue.created"
    VenueUpdated  = "venue.updated"
    VenueDeleted  = "venue.deleted"
    ArtistCreated = "artist.created"
    ArtistUpdated = "artist.updated"
    ArtistDeleted = "artist.deleted"
    ShowCreated   = "show.created"
    ShowDeleted   = "show.deleted"
)

// ActivityEvent is published after every successful mutation. It carries
// enough to log or announce the change without querying the database.
type ActivityEvent struct {
    ID         string    `json:"id"`
    Type       string    `json:"type"`
    Entity     string    `json:"entity"`
    EntityID   uint64    `json:"entity_id"`
    Name       string    `json:"name"`
    OccurredAt time.Time `json:"occurred_at"`
    Detail     string    `json:"detail,omitempty"`
}

// NewEvent stamps a new event with a random id and the current UTC time.
func NewEvent(typ, entity string, id uint64, name, detail string) ActivityEvent {
    return ActivityEvent{
        ID:         uuid.NewString(),
        Type:       typ,
        Entity:     entity,
        EntityID:   id,
        Name:       name,
        OccurredAt: time.Now().UTC(),
        Detail:     detail,
    }
}

// Line renders the event as one line of the activity log.
func (e ActivityEvent) Line() string {
    line := fmt.Sprintf("[%s] %s | %s_id=%d | name=%q | event_id=%s",
        e.OccurredAt.UTC().Format(time.RFC3339), e.Type, e.Entity, e.EntityID, e.Name, e.ID)
    if e.Detail != "" {
        line += " | " + e.Detail
    }
    return line + "\n"
}
