package fact

import (
	"context"
	"testing"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/config"
	"github.com/fastandsafe/courier-dwh/internal/dims"
	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/seed"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/testutil"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

// Full load against a freshly seeded operational database: every
// dimension and the fact, in dependency order, into an in-memory
// warehouse.
func TestFullLoadFromSeededDatabase(t *testing.T) {
	base := testutil.SkipIfNoPostgres(t)
	connStr := testutil.CreateTestDB(t, base)
	ctx := context.Background()

	db, err := source.Connect(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	if err := seed.CreateSchema(ctx, db.Pool); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	g := seed.NewGeneratorWithSeed(config.SeedConfig{
		Clients:  5,
		Couriers: 10,
		Services: 100,
	}, 7)
	if err := g.Run(ctx, db.Pool); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	store, err := warehouse.Open("")
	if err != nil {
		t.Fatalf("Failed to open warehouse: %v", err)
	}
	defer store.Close()

	env := dims.Env{
		Source:        db,
		Warehouse:     store,
		CalendarStart: etl.Date{Year: 2023, Month: time.January, Day: 1},
		CalendarEnd:   etl.Date{Year: 2025, Month: time.December, Day: 31},
	}

	load := func() {
		t.Helper()
		order, err := etl.Order(dims.Steps())
		if err != nil {
			t.Fatalf("Order failed: %v", err)
		}
		for _, name := range order {
			b, err := dims.Get(name)
			if err != nil {
				t.Fatalf("Get(%s) failed: %v", name, err)
			}
			if err := b.Run(ctx, env); err != nil {
				t.Fatalf("Load of %s failed: %v", name, err)
			}
		}
	}
	load()

	var events int64
	if err := db.Pool.QueryRow(ctx,
		"SELECT count(*) FROM mensajeria_estadosservicio").Scan(&events); err != nil {
		t.Fatalf("Failed to count source events: %v", err)
	}
	factRows, err := store.RowCount(ctx, factTable)
	if err != nil {
		t.Fatalf("Failed to count fact rows: %v", err)
	}
	if factRows != events {
		t.Errorf("Fact has %d rows, source has %d state changes", factRows, events)
	}

	clientes, err := store.RowCount(ctx, "Dim_Cliente")
	if err != nil {
		t.Fatalf("Failed to count Dim_Cliente: %v", err)
	}
	if clientes != 5 {
		t.Errorf("Dim_Cliente has %d rows, want 5", clientes)
	}

	var novedadTipos int64
	if err := db.Pool.QueryRow(ctx,
		"SELECT count(*) FROM mensajeria_tiponovedad").Scan(&novedadTipos); err != nil {
		t.Fatalf("Failed to count novelty types: %v", err)
	}
	novedades, err := store.RowCount(ctx, "Dim_Novedad")
	if err != nil {
		t.Fatalf("Failed to count Dim_Novedad: %v", err)
	}
	if novedades != novedadTipos+1 {
		t.Errorf("Dim_Novedad has %d rows, want %d (source types plus sentinel)", novedades, novedadTipos+1)
	}

	// A second run against the unchanged source must land on the same
	// row counts.
	load()
	factAgain, err := store.RowCount(ctx, factTable)
	if err != nil {
		t.Fatalf("Failed to recount fact rows: %v", err)
	}
	if factAgain != factRows {
		t.Errorf("Second run changed fact cardinality: %d then %d", factRows, factAgain)
	}
}
