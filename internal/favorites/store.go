// Package favorites persists per-user saved restaurants in Postgres.
package favorites

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"log/slog"

	"github.com/pg56714/line-dine-mapper/internal/logger"
)

// Favorite is one saved restaurant owned by a LINE user. Uniqueness of
// (line_user_id, restaurant_id) is logical, not enforced by the schema;
// callers must check Exists before Add.
type Favorite struct {
	ID           int64     `db:"id"`
	LineUserID   string    `db:"line_user_id"`
	RestaurantID string    `db:"restaurant_id"`
	Name         string    `db:"name"`
	Address      string    `db:"address"`
	Latitude     float64   `db:"latitude"`
	Longitude    float64   `db:"longitude"`
	AddedAt      time.Time `db:"added_at"`
}

// Store provides CRUD over the favorites table.
type Store struct {
	db *sqlx.DB
}

// NewStore wraps the shared database handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// ListByUser returns all favorites of one user, oldest first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Favorite, error) {
	start := time.Now()
	var out []Favorite
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, line_user_id, restaurant_id, name, address, latitude, longitude, added_at
		   FROM favorites
		  WHERE line_user_id = $1
		  ORDER BY added_at, id`, userID)
	if err != nil {
		logger.SVCFavorites.Error("list failed",
			slog.String("event", "favorites.list"),
			slog.String("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	logger.SVCFavorites.Debug("list",
		slog.String("event", "favorites.list"),
		slog.String("user_id", userID),
		slog.Int("count", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}

// Add inserts a new favorite record.
func (s *Store) Add(ctx context.Context, f Favorite) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (line_user_id, restaurant_id, name, address, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.LineUserID, f.RestaurantID, f.Name, f.Address, f.Latitude, f.Longitude)
	if err != nil {
		logger.SVCFavorites.Error("insert failed",
			slog.String("event", "favorites.add"),
			slog.String("user_id", f.LineUserID),
			slog.String("place_id", f.RestaurantID),
			slog.String("err", err.Error()),
		)
		return err
	}
	logger.SVCFavorites.Info("favorite added",
		slog.String("event", "favorites.add"),
		slog.String("user_id", f.LineUserID),
		slog.String("place_id", f.RestaurantID),
	)
	return nil
}

// Delete removes the favorite for (user, place) and reports affected rows.
// Deleting a missing pair is not an error; it reports zero rows.
func (s *Store) Delete(ctx context.Context, userID, restaurantID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE line_user_id = $1 AND restaurant_id = $2`,
		userID, restaurantID)
	if err != nil {
		logger.SVCFavorites.Error("delete failed",
			slog.String("event", "favorites.delete"),
			slog.String("user_id", userID),
			slog.String("place_id", restaurantID),
			slog.String("err", err.Error()),
		)
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	logger.SVCFavorites.Info("favorite deleted",
		slog.String("event", "favorites.delete"),
		slog.String("user_id", userID),
		slog.String("place_id", restaurantID),
		slog.Int64("count", affected),
	)
	return affected, nil
}

// Exists reports whether the user already saved the given place.
func (s *Store) Exists(ctx context.Context, userID, restaurantID string) (bool, error) {
	var id int64
	err := s.db.GetContext(ctx, &id,
		`SELECT id FROM favorites WHERE line_user_id = $1 AND restaurant_id = $2 LIMIT 1`,
		userID, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.SVCFavorites.Error("exists check failed",
			slog.String("event", "favorites.exists"),
			slog.String("user_id", userID),
			slog.String("place_id", restaurantID),
			slog.String("err", err.Error()),
		)
		return false, err
	}
	return true, nil
}
