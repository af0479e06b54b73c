package repositories

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	_ "modernc.org/sqlite"
)

func sampleTrip(owner, dest string) models.SavedTrip {
	return models.SavedTrip{
		UserID:      owner,
		Destination: dest,
		FormData: models.TripRequest{
			Destination: dest, Days: 2, Budget: models.BudgetModerate,
			Travelers: models.TravelersStudents, TravelerCount: 4, Industry: "Automotive",
		},
		Itinerary: models.ItineraryResult{
			Destination: dest,
			Overview:    "Overview",
			Days: []models.DayPlan{{Day: 1, Title: "Day", Activities: []models.Activity{{
				Time: "09:00 AM", Description: "Tour", Location: "Plant", Type: models.ActivityVisit,
				Coordinates: &models.Coordinates{Lat: 18.5, Lng: 73.8},
			}}}},
		},
		Companies: []models.CompanyInfo{{Name: "Acme"}},
		Budget:    &models.BudgetBreakdown{Total: 6700, Currency: "INR", Tips: []string{}},
	}
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "trips.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLTripStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	store := SQLTripStore{DB: openSQLite(t), Now: func() time.Time { return fixed }}

	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	first, err := store.Create(ctx, sampleTrip("u1", "Pune"))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := store.Create(ctx, sampleTrip("u1", "Nashik"))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if _, err := store.Create(ctx, sampleTrip("u2", "Goa")); err != nil {
		t.Fatalf("create other owner: %v", err)
	}
	if first == second || !strings.HasPrefix(first, "trip-") {
		t.Fatalf("unexpected ids %q %q", first, second)
	}

	trips, err := store.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips for u1, got %d", len(trips))
	}
	// same timestamp: insertion order breaks the tie, newest first
	if trips[0].ID != second || trips[1].ID != first {
		t.Fatalf("unexpected order: %s, %s", trips[0].ID, trips[1].ID)
	}
	if !trips[0].CreatedAt.Equal(fixed) {
		t.Fatalf("created_at not stamped: %v", trips[0].CreatedAt)
	}

	got, err := store.GetByID(ctx, first)
	if err != nil || got == nil {
		t.Fatalf("get by id: %v %v", got, err)
	}
	if got.Destination != "Pune" || got.Budget == nil || got.Budget.Total != 6700 {
		t.Fatalf("unexpected trip: %+v", got)
	}
	if got.Itinerary.Days[0].Activities[0].Coordinates == nil {
		t.Fatalf("coordinates lost in round trip")
	}
	if got.Photos == nil {
		t.Fatalf("photos should decode as empty list")
	}

	missing, err := store.GetByID(ctx, "trip-0-missing")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing id, got %v %v", missing, err)
	}
}

func TestSQLTripStoreNewestFirstByTime(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	store := SQLTripStore{DB: openSQLite(t), Now: func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}}
	if err := store.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	for _, dest := range []string{"A", "B", "C"} {
		if _, err := store.Create(ctx, sampleTrip("u1", dest)); err != nil {
			t.Fatalf("create %s: %v", dest, err)
		}
	}
	trips, err := store.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var got []string
	for _, tr := range trips {
		got = append(got, tr.Destination)
	}
	if strings.Join(got, ",") != "C,B,A" {
		t.Fatalf("expected C,B,A got %v", got)
	}
}

func TestSQLTripStoreMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("sqlite_master").WithArgs("saved_trips").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	trips, err := SQLTripStore{DB: db}.ListByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(trips) != 0 {
		t.Fatalf("expected empty list, got %d", len(trips))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLTripStoreCreateMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	fixed := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO saved_trips")).
		WithArgs(sqlmock.AnyArg(), "u1", "Pune", fixed.UnixMilli(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	store := SQLTripStore{DB: db, Dialect: "mysql", Now: func() time.Time { return fixed }}
	id, err := store.Create(context.Background(), sampleTrip("u1", "Pune"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.HasPrefix(id, "trip-1746086400000-") {
		t.Fatalf("unexpected id %q", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLTripStoreRejectsMissingOwner(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	_, err = SQLTripStore{DB: db}.Create(context.Background(), sampleTrip("", "Pune"))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSQLTripStoreGetByIDMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("saved_trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("saved_trips"))
	mock.ExpectQuery("FROM saved_trips").WithArgs("trip-1-abc").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "destination", "created_at_ms", "payload"}).
			AddRow("trip-1-abc", "u1", "Pune", int64(1000), `{"itinerary":{"destination":"Pune","overview":"x","days":[]},"companies":null,"budget":null,"photos":null}`))

	trip, err := SQLTripStore{DB: db, Dialect: "mysql"}.GetByID(context.Background(), "trip-1-abc")
	if err != nil || trip == nil {
		t.Fatalf("get: %v %v", trip, err)
	}
	if trip.Budget != nil || trip.Companies == nil || len(trip.Companies) != 0 {
		t.Fatalf("unexpected decode: %+v", trip)
	}
	if trip.CreatedAt.UnixMilli() != 1000 {
		t.Fatalf("unexpected created_at %v", trip.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLTripStoreLookupFailureIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	locked := errors.New("database is locked")
	mock.ExpectQuery("sqlite_master").WithArgs("saved_trips").WillReturnError(locked)
	mock.ExpectQuery("sqlite_master").WithArgs("saved_trips").WillReturnError(locked)

	store := SQLTripStore{DB: db}
	trips, err := store.ListByOwner(context.Background(), "u1")
	if !errors.Is(err, locked) {
		t.Fatalf("expected lookup error from list, got %v (len=%d)", err, len(trips))
	}

	trip, err := store.GetByID(context.Background(), "trip-1-abc")
	if !errors.Is(err, locked) || trip != nil {
		t.Fatalf("expected lookup error from get, got trip=%v err=%v", trip, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
