//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package fact assembles Fact_Cambio_Estado_Servicio: one row per
// service-state-change event, with every foreign key resolved against the
// loaded dimensions or substituted by the sentinel policy.
package fact

import (
	"fmt"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/etl"
)

const factTable = "Fact_Cambio_Estado_Servicio"

// Event is one extracted state-change with its service context. Pointer
// fields are nullable in the source; whether null is valid depends on
// the key's optional/mandatory classification.
type Event struct {
	ID                 int64 // operational servicio_estado id
	ServicioID         int64
	EstadoID           int64
	Fecha              time.Time
	Hora               string // HH:MM:SS text from the source
	ClienteID          *int64
	MensajeroID        *int64
	TipoServicioID     *int64
	SedeOrigenID       *int64
	GeografiaDestinoID *int64
	DireccionDestino   *string
	TipoNovedadID      *int64
}

// Row is one finished fact row. Every foreign key holds a valid surrogate
// key or its dimension's sentinel, never a null and never an unresolved
// operational identifier.
type Row struct {
	Key                 int64
	FechaKey            int64
	HoraKey             int64
	ClienteKey          int64
	SedeOrigenKey       int64
	GeografiaDestinoKey int64
	MensajeroKey        int64
	EstadoKey           int64
	UrgenciaKey         int64
	NovedadKey          int64
	ServicioID          int64
	DireccionDestino    *string
	Timestamp           time.Time
	Contador            int32
}

// Lookups holds the dimension projections the assembler joins against.
type Lookups struct {
	Fecha     *etl.Lookup[etl.Date]
	Hora      *etl.Lookup[etl.TimeOfDay]
	Cliente   *etl.Lookup[int64]
	Sede      *etl.Lookup[int64]
	Geografia *etl.Lookup[int64]
	Mensajero *etl.Lookup[int64]
	Estado    *etl.Lookup[int64]
	Urgencia  *etl.Lookup[int64]
	Novedad   *etl.Lookup[int64]

	// SinNovedadKey is the surrogate key of the Dim_Novedad sentinel row,
	// substituted for events with no reported incident.
	SinNovedadKey int64
}

var clockLayouts = []string{"15:04:05.999999", "15:04:05", "15:04"}

// parseClock normalizes the source's time-of-day text to the minute. A
// value that parses under none of the known layouts is a reported error,
// never a silent non-match.
func parseClock(s string) (etl.TimeOfDay, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return etl.TimeOfDayOf(t), nil
		}
	}
	return etl.TimeOfDay{}, fmt.Errorf("invalid time-of-day %q", s)
}

// Assemble resolves every event into a fact row. The output cardinality
// always equals the input cardinality: resolution is a left-outer join,
// so an unmatched optional key substitutes a sentinel instead of dropping
// the event. Unmatched mandatory keys (fecha, hora, cliente, estado)
// abort the build with a TransformError naming the offending event.
func Assemble(events []Event, lk Lookups) ([]Row, error) {
	b := etl.Builder[Event, Row]{
		Transform: func(ev Event) (Row, error) { return resolve(ev, lk) },
		SetKey:    func(r *Row, key int64) { r.Key = key },
	}
	return b.Build(events)
}

func resolve(ev Event, lk Lookups) (Row, error) {
	day := etl.DateOf(ev.Fecha)
	fechaKey, err := etl.Required(lk.Fecha, day, factTable, ev.ID)
	if err != nil {
		return Row{}, err
	}

	clock, err := parseClock(ev.Hora)
	if err != nil {
		return Row{}, &etl.TransformError{
			Step:   factTable,
			Key:    fmt.Sprint(ev.ID),
			Reason: err.Error(),
		}
	}
	horaKey, err := etl.Required(lk.Hora, clock, factTable, ev.ID)
	if err != nil {
		return Row{}, err
	}

	if ev.ClienteID == nil {
		return Row{}, &etl.TransformError{
			Step:   factTable,
			Key:    fmt.Sprint(ev.ID),
			Reason: "event has no client",
		}
	}
	clienteKey, err := etl.Required(lk.Cliente, *ev.ClienteID, factTable, ev.ID)
	if err != nil {
		return Row{}, err
	}

	estadoKey, err := etl.Required(lk.Estado, ev.EstadoID, factTable, ev.ID)
	if err != nil {
		return Row{}, err
	}

	return Row{
		FechaKey:            fechaKey,
		HoraKey:             horaKey,
		ClienteKey:          clienteKey,
		EstadoKey:           estadoKey,
		SedeOrigenKey:       etl.Optional(lk.Sede, ev.SedeOrigenID, etl.SentinelKey),
		GeografiaDestinoKey: etl.Optional(lk.Geografia, ev.GeografiaDestinoID, etl.SentinelKey),
		MensajeroKey:        etl.Optional(lk.Mensajero, ev.MensajeroID, etl.SentinelKey),
		UrgenciaKey:         etl.Optional(lk.Urgencia, ev.TipoServicioID, etl.SentinelKey),
		NovedadKey:          etl.Optional(lk.Novedad, ev.TipoNovedadID, lk.SinNovedadKey),
		ServicioID:          ev.ServicioID,
		DireccionDestino:    ev.DireccionDestino,
		Timestamp:           etl.Combine(day, clock),
		Contador:            1,
	}, nil
}
