package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// VenueRepo encapsulates all database queries related to venues.
type VenueRepo struct {
	db *sqlx.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sqlx.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts v after checking that no venue has the same name. On
// success v.ID is populated. ErrVenueExists is returned on a name clash.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := count(ctx, tx, `SELECT COUNT(*) FROM venues WHERE name = ?`, v.Name)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrVenueExists
		}
		id, err := insertID(ctx, tx,
			`INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
			                     genres, website_link, seeking_talent, seeking_description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink,
			v.Genres, v.WebsiteLink, v.SeekingTalent, v.SeekingDescription)
		if err != nil {
			return err
		}
		v.ID = id
		return nil
	})
}

// Update overwrites every editable field of the venue v.ID. It returns
// ErrVenueNotFound when the row is missing and ErrVenueExists when a
// different venue already uses the new name.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		n, err := count(ctx, tx, `SELECT COUNT(*) FROM venues WHERE id = ?`, v.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrVenueNotFound
		}
		n, err = count(ctx, tx, `SELECT COUNT(*) FROM venues WHERE name = ? AND id <> ?`, v.Name, v.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrVenueExists
		}
		_, err = tx.ExecContext(ctx, tx.Rebind(
			`UPDATE venues
			    SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?,
			        facebook_link = ?, genres = ?, website_link = ?, seeking_talent = ?,
			        seeking_description = ?
			  WHERE id = ?`),
			v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink,
			v.FacebookLink, v.Genres, v.WebsiteLink, v.SeekingTalent,
			v.SeekingDescription, v.ID)
		return err
	})
}

// Delete removes the venue and its shows in one transaction and returns
// the deleted venue's name.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (string, error) {
	var name string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &name, tx.Rebind(`SELECT name FROM venues WHERE id = ?`), id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVenueNotFound
			}
			return err
		}
		// shows first, the FK would reject the venue delete otherwise
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM shows WHERE venue_id = ?`), id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM venues WHERE id = ?`), id)
		return err
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// GetByID fetches a venue. It returns ErrVenueNotFound if no row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	var v model.Venue
	err := r.db.GetContext(ctx, &v, r.db.Rebind(
		`SELECT id, name, city, state, address, phone, image_link, facebook_link, genres,
		        website_link, seeking_talent, seeking_description
		   FROM venues WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Summaries lists every venue with the start times of its shows.
func (r *VenueRepo) Summaries(ctx context.Context) ([]model.Summary, error) {
	return loadSummaries(ctx, r.db, "venues", "venue_id")
}

// Shows lists the venue's shows joined with the performing artist,
// ordered by start time.
func (r *VenueRepo) Shows(ctx context.Context, id uint64) ([]model.ShowListing, error) {
	out := []model.ShowListing{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(
		`SELECT s.id, s.venue_id, s.artist_id, a.name AS artist_name,
		        a.image_link AS artist_image_link, s.start_time
		   FROM shows s
		   JOIN artists a ON a.id = s.artist_id
		  WHERE s.venue_id = ?
		  ORDER BY s.start_time`), id)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Options returns id/name pairs of all venues ordered by name.
func (r *VenueRepo) Options(ctx context.Context) ([]model.Option, error) {
	out := []model.Option{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM venues ORDER BY name, id`); err != nil {
		return nil, err
	}
	return out, nil
}
