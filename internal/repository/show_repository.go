package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo provides CRUD operations for shows.
type ShowRepo struct {
	db *sqlx.DB
}

// NewShowRepo creates a new ShowRepo bound to the given database.
func NewShowRepo(db *sqlx.DB) *ShowRepo { return &ShowRepo{db: db} }

// Create inserts a show after verifying, in this order, that its venue and
// its artist exist. ErrVenueNotFound or ErrArtistNotFound is returned
// otherwise. StartTime is stored in UTC and s.ID is populated on success.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := count(ctx, tx, `SELECT COUNT(*) FROM venues WHERE id = ?`, s.VenueID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotFound
		}
		n, err = count(ctx, tx, `SELECT COUNT(*) FROM artists WHERE id = ?`, s.ArtistID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrArtistNotFound
		}
		s.StartTime = s.StartTime.UTC()
		id, err := insertID(ctx, tx,
			`INSERT INTO shows (artist_id, venue_id, start_time) VALUES (?, ?, ?)`,
			s.ArtistID, s.VenueID, s.StartTime)
		if err != nil {
			return err
		}
		s.ID = id
		return nil
	})
}

const listingSelect = `SELECT s.id, s.venue_id, v.name AS venue_name, v.image_link AS venue_image_link,
        s.artist_id, a.name AS artist_name, a.image_link AS artist_image_link, s.start_time
   FROM shows s
   JOIN venues v ON v.id = s.venue_id
   JOIN artists a ON a.id = s.artist_id`

// List returns every show joined with its venue and artist, ordered by
// start time.
func (r *ShowRepo) List(ctx context.Context) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	if err := r.db.SelectContext(ctx, &out, listingSelect+` ORDER BY s.start_time, s.id`); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns one show joined with its venue and artist. It returns
// ErrShowNotFound when the id does not exist.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.ShowListing, error) {
	var s model.ShowListing
	if err := r.db.GetContext(ctx, &s, r.db.Rebind(listingSelect+` WHERE s.id = ?`), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes a single show. ErrShowNotFound is returned when no row
// matched.
func (r *ShowRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM shows WHERE id = ?`), id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrShowNotFound
		}
		return nil
	})
}
