//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dims

import (
	"context"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

// Dim_Hora is generated: one row per hour and minute of the day,
// 1440 rows, each banded into a time-of-day slot.

type horaRow struct {
	Key    int64
	Hora   etl.TimeOfDay
	Franja string
}

func franjaHoraria(hour int) string {
	switch {
	case hour <= 5:
		return "Madrugada"
	case hour <= 11:
		return "Mañana"
	case hour <= 17:
		return "Tarde"
	default:
		return "Noche"
	}
}

func clockRows() []horaRow {
	minutes := make([]etl.TimeOfDay, 0, 24*60)
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			minutes = append(minutes, etl.TimeOfDay{Hour: h, Minute: m})
		}
	}

	b := etl.Builder[etl.TimeOfDay, horaRow]{
		Transform: func(t etl.TimeOfDay) (horaRow, error) {
			return horaRow{Hora: t, Franja: franjaHoraria(t.Hour)}, nil
		},
		SetKey: func(r *horaRow, key int64) { r.Key = key },
	}

	rows, _ := b.Build(minutes)
	return rows
}

type hora struct{}

func (hora) Name() string { return "Dim_Hora" }

func (hora) DependsOn() []string { return nil }

func (hora) Run(ctx context.Context, env Env) error {
	rows := clockRows()

	spec := warehouse.TableSpec{
		Name:       "Dim_Hora",
		PrimaryKey: "Hora_Key",
		Columns: []warehouse.Column{
			{Name: "Hora_Key", Type: "BIGINT"},
			{Name: "Hora_Completa", Type: "VARCHAR"},
			{Name: "Hora_Del_Dia", Type: "INTEGER"},
			{Name: "Minuto_De_La_Hora", Type: "INTEGER"},
			{Name: "Franja_Horaria", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Key, r.Hora.String(), r.Hora.Hour, r.Hora.Minute, r.Franja,
		})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
