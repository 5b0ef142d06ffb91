package fact

import (
	"errors"
	"testing"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/etl"
)

func i64(v int64) *int64 { return &v }

func testLookups() Lookups {
	fecha := etl.NewLookup[etl.Date]("Dim_Fecha")
	fecha.Put(etl.Date{Year: 2024, Month: time.June, Day: 2}, 519)

	hora := etl.NewLookup[etl.TimeOfDay]("Dim_Hora")
	hora.Put(etl.TimeOfDay{Hour: 14, Minute: 37}, 878)

	cliente := etl.NewLookup[int64]("Dim_Cliente")
	cliente.Put(100, 4)

	sede := etl.NewLookup[int64]("Dim_Sede")
	sede.Put(11, 2)

	geografia := etl.NewLookup[int64]("Dim_Geografia")
	geografia.Put(5, 3)

	mensajero := etl.NewLookup[int64]("Dim_Mensajero")
	mensajero.Put(9, 6)

	estado := etl.NewLookup[int64]("Dim_Estado_Servicio")
	estado.Put(2, 2)

	urgencia := etl.NewLookup[int64]("Dim_Urgencia_Servicio")
	urgencia.Put(1, 1)

	novedad := etl.NewLookup[int64]("Dim_Novedad")
	novedad.Put(-1, 1)
	novedad.Put(3, 4)

	return Lookups{
		Fecha:         fecha,
		Hora:          hora,
		Cliente:       cliente,
		Sede:          sede,
		Geografia:     geografia,
		Mensajero:     mensajero,
		Estado:        estado,
		Urgencia:      urgencia,
		Novedad:       novedad,
		SinNovedadKey: 1,
	}
}

func resolvableEvent() Event {
	return Event{
		ID:                 1000,
		ServicioID:         77,
		EstadoID:           2,
		Fecha:              time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
		Hora:               "14:37:59",
		ClienteID:          i64(100),
		MensajeroID:        i64(9),
		TipoServicioID:     i64(1),
		SedeOrigenID:       i64(11),
		GeografiaDestinoID: i64(5),
		TipoNovedadID:      i64(3),
	}
}

func TestAssembleResolvesAllKeys(t *testing.T) {
	rows, err := Assemble([]Event{resolvableEvent()}, testLookups())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}

	r := rows[0]
	if r.Key != 1 {
		t.Errorf("Surrogate key = %d, want 1", r.Key)
	}
	if r.FechaKey != 519 || r.HoraKey != 878 {
		t.Errorf("Calendar keys = %d, %d", r.FechaKey, r.HoraKey)
	}
	if r.ClienteKey != 4 || r.EstadoKey != 2 {
		t.Errorf("Mandatory keys = %d, %d", r.ClienteKey, r.EstadoKey)
	}
	if r.SedeOrigenKey != 2 || r.GeografiaDestinoKey != 3 {
		t.Errorf("Site/geography keys = %d, %d", r.SedeOrigenKey, r.GeografiaDestinoKey)
	}
	if r.MensajeroKey != 6 || r.UrgenciaKey != 1 || r.NovedadKey != 4 {
		t.Errorf("Optional keys = %d, %d, %d", r.MensajeroKey, r.UrgenciaKey, r.NovedadKey)
	}
	if r.ServicioID != 77 {
		t.Errorf("ServicioID = %d", r.ServicioID)
	}

	// The event time has seconds; the combined timestamp is truncated to
	// the minute the Hora dimension resolves at.
	want := time.Date(2024, time.June, 2, 14, 37, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", r.Timestamp, want)
	}
	if r.Contador != 1 {
		t.Errorf("Contador = %d, want 1", r.Contador)
	}
}

func TestAssembleNullCourierGetsSentinel(t *testing.T) {
	ev := resolvableEvent()
	ev.MensajeroID = nil

	rows, err := Assemble([]Event{ev}, testLookups())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Event with null courier was dropped")
	}
	if rows[0].MensajeroKey != etl.SentinelKey {
		t.Errorf("MensajeroKey = %d, want %d", rows[0].MensajeroKey, etl.SentinelKey)
	}
	// Everything else still resolves.
	if rows[0].ClienteKey != 4 || rows[0].FechaKey != 519 {
		t.Errorf("Other keys disturbed: %+v", rows[0])
	}
}

func TestAssembleUnmatchedOptionalKeysGetSentinels(t *testing.T) {
	ev := resolvableEvent()
	ev.MensajeroID = i64(9999)       // not in lookup
	ev.TipoServicioID = nil          // absent
	ev.SedeOrigenID = nil            // absent
	ev.GeografiaDestinoID = i64(999) // not in lookup
	ev.TipoNovedadID = nil           // no incident reported

	rows, err := Assemble([]Event{ev}, testLookups())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	r := rows[0]
	if r.MensajeroKey != etl.SentinelKey || r.UrgenciaKey != etl.SentinelKey {
		t.Errorf("Courier/urgency sentinels wrong: %d, %d", r.MensajeroKey, r.UrgenciaKey)
	}
	if r.SedeOrigenKey != etl.SentinelKey || r.GeografiaDestinoKey != etl.SentinelKey {
		t.Errorf("Site/geography sentinels wrong: %d, %d", r.SedeOrigenKey, r.GeografiaDestinoKey)
	}
	// Novedad has a dedicated sentinel row, so it gets that row's key.
	if r.NovedadKey != 1 {
		t.Errorf("NovedadKey = %d, want 1 (Sin Novedad)", r.NovedadKey)
	}
}

func TestAssembleCardinalityPreserved(t *testing.T) {
	events := make([]Event, 50)
	for i := range events {
		ev := resolvableEvent()
		ev.ID = int64(1000 + i)
		if i%2 == 0 {
			ev.MensajeroID = nil
		}
		if i%3 == 0 {
			ev.TipoNovedadID = nil
		}
		events[i] = ev
	}

	rows, err := Assemble(events, testLookups())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(rows) != len(events) {
		t.Fatalf("Cardinality changed: %d events, %d rows", len(events), len(rows))
	}
	for i, r := range rows {
		if r.Key != int64(i+1) {
			t.Fatalf("Row %d has key %d", i, r.Key)
		}
	}
}

func TestAssembleUnmatchedMandatoryKeyFails(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Event)
	}{
		{"unmatched date", func(ev *Event) {
			ev.Fecha = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
		}},
		{"unmatched time", func(ev *Event) { ev.Hora = "03:03:00" }},
		{"null client", func(ev *Event) { ev.ClienteID = nil }},
		{"unmatched client", func(ev *Event) { ev.ClienteID = i64(424242) }},
		{"unmatched state", func(ev *Event) { ev.EstadoID = 99 }},
		{"malformed time", func(ev *Event) { ev.Hora = "not a time" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := resolvableEvent()
			tt.mutate(&ev)

			_, err := Assemble([]Event{ev}, testLookups())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var terr *etl.TransformError
			if !errors.As(err, &terr) {
				t.Fatalf("Expected TransformError, got %T: %v", err, err)
			}
			if terr.Key != "1000" {
				t.Errorf("Offending key = %q, want '1000'", terr.Key)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want etl.TimeOfDay
	}{
		{"14:37:59", etl.TimeOfDay{Hour: 14, Minute: 37}},
		{"14:37:59.123456", etl.TimeOfDay{Hour: 14, Minute: 37}},
		{"09:05", etl.TimeOfDay{Hour: 9, Minute: 5}},
		{"00:00:00", etl.TimeOfDay{Hour: 0, Minute: 0}},
	}
	for _, tt := range tests {
		got, err := parseClock(tt.in)
		if err != nil {
			t.Errorf("parseClock(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := parseClock("25:99"); err == nil {
		t.Error("Expected error for out-of-range clock, got nil")
	}
}
