package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "github.com/Omkar290703/Ai-IV-Planner/internal/db"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
)

const savedTripsTable = "saved_trips"

// tripPayload is the JSON document kept in the payload column.
type tripPayload struct {
	FormData  models.TripRequest      `json:"formData"`
	Itinerary models.ItineraryResult  `json:"itinerary"`
	Companies []models.CompanyInfo    `json:"companies"`
	Budget    *models.BudgetBreakdown `json:"budget"`
	Photos    []models.PhotoItem      `json:"photos"`
}

// SQLTripStore keeps trips in a single table. The nested trip content is
// stored as JSON next to the indexed owner and timestamp columns.
type SQLTripStore struct {
	DB      *sql.DB
	Dialect string
	Now     func() time.Time
}

func (r SQLTripStore) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r SQLTripStore) dialect() string {
	return intdb.NormalizeDialect(r.Dialect)
}

func (r SQLTripStore) schema() []string {
	if r.dialect() == intdb.DialectMySQL {
		return []string{`
		CREATE TABLE IF NOT EXISTS saved_trips (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id VARCHAR(64) NOT NULL UNIQUE,
			user_id VARCHAR(128) NOT NULL,
			destination VARCHAR(255) NOT NULL DEFAULT '',
			created_at_ms BIGINT NOT NULL,
			payload LONGTEXT NOT NULL,
			INDEX idx_saved_trips_owner (user_id, created_at_ms)
		) CHARACTER SET utf8mb4`}
	}
	return []string{
		`CREATE TABLE IF NOT EXISTS saved_trips (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			user_id TEXT NOT NULL,
			destination TEXT NOT NULL DEFAULT '',
			created_at_ms INTEGER NOT NULL,
			payload TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_trips_owner ON saved_trips (user_id, created_at_ms)`,
	}
}

// tableReady is false when the table was never created; lookup failures
// are returned so they are not mistaken for an empty store.
func (r SQLTripStore) tableReady(ctx context.Context) (bool, error) {
	if r.DB == nil {
		return false, domain.InternalError{Msg: "trip store has no database"}
	}
	return intdb.HasTable(ctx, r.DB, r.dialect(), savedTripsTable)
}

// EnsureSchema creates the table and its owner index when missing.
func (r SQLTripStore) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return domain.InternalError{Msg: "trip store has no database"}
	}
	for _, stmt := range r.schema() {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure %s schema: %w", savedTripsTable, err)
		}
	}
	return nil
}

func (r SQLTripStore) Create(ctx context.Context, trip models.SavedTrip) (string, error) {
	if r.DB == nil {
		return "", domain.InternalError{Msg: "trip store has no database"}
	}
	if strings.TrimSpace(trip.UserID) == "" {
		return "", domain.ValidationError{Field: "userId", Msg: "owner is required"}
	}

	now := r.now().UTC()
	id := NewTripID(now)

	payload, err := json.Marshal(tripPayload{
		FormData:  trip.FormData,
		Itinerary: trip.Itinerary,
		Companies: trip.Companies,
		Budget:    trip.Budget,
		Photos:    trip.Photos,
	})
	if err != nil {
		return "", fmt.Errorf("encode trip: %w", err)
	}

	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO saved_trips (id, user_id, destination, created_at_ms, payload) VALUES (?, ?, ?, ?, ?)`,
		id, trip.UserID, trip.Destination, now.UnixMilli(), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("insert trip: %w", err)
	}
	return id, nil
}

func (r SQLTripStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SavedTrip, error) {
	out := []models.SavedTrip{}
	if ok, err := r.tableReady(ctx); err != nil || !ok {
		return out, err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, destination, created_at_ms, payload
		FROM saved_trips
		WHERE user_id = ?
		ORDER BY created_at_ms DESC, seq DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, trip)
	}
	return out, rows.Err()
}

func (r SQLTripStore) GetByID(ctx context.Context, id string) (*models.SavedTrip, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if ok, err := r.tableReady(ctx); err != nil || !ok {
		return nil, err
	}

	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, destination, created_at_ms, payload
		FROM saved_trips
		WHERE id = ?
		LIMIT 1`, id)

	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.SavedTrip, error) {
	var (
		trip      models.SavedTrip
		createdMs int64
		raw       string
	)
	if err := s.Scan(&trip.ID, &trip.UserID, &trip.Destination, &createdMs, &raw); err != nil {
		return models.SavedTrip{}, err
	}

	var p tripPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.SavedTrip{}, fmt.Errorf("decode trip %s: %w", trip.ID, err)
	}
	trip.CreatedAt = time.UnixMilli(createdMs).UTC()
	trip.FormData = p.FormData
	trip.Itinerary = p.Itinerary
	trip.Companies = p.Companies
	trip.Budget = p.Budget
	trip.Photos = p.Photos
	ensureSlices(&trip)
	return trip, nil
}
