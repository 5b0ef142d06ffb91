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

// Dim_Fecha is generated, not extracted: one row per calendar day of the
// configured range, with Spanish month and weekday names.

var nombresMes = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var nombresDia = [...]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

type fechaRow struct {
	Key             int64
	Dia             etl.Date
	Ano             int
	Trimestre       int
	NumeroMes       int
	NombreMes       string
	NumeroDiaMes    int
	NumeroDiaSemana int // Monday = 1 .. Sunday = 7
	NombreDiaSemana string
	EsFinSemana     bool
}

func calendarRows(start, end etl.Date) []fechaRow {
	var days []etl.Date
	for d := start; !d.After(end); d = d.Next() {
		days = append(days, d)
	}

	b := etl.Builder[etl.Date, fechaRow]{
		Transform: func(d etl.Date) (fechaRow, error) {
			weekday := int(d.Time().Weekday())
			if weekday == 0 {
				weekday = 7
			}
			return fechaRow{
				Dia:             d,
				Ano:             d.Year,
				Trimestre:       (int(d.Month)-1)/3 + 1,
				NumeroMes:       int(d.Month),
				NombreMes:       nombresMes[int(d.Month)-1],
				NumeroDiaMes:    d.Day,
				NumeroDiaSemana: weekday,
				NombreDiaSemana: nombresDia[weekday-1],
				EsFinSemana:     weekday >= 6,
			}, nil
		},
		SetKey: func(r *fechaRow, key int64) { r.Key = key },
	}

	rows, _ := b.Build(days) // the transform is total
	return rows
}

type fecha struct{}

func (fecha) Name() string { return "Dim_Fecha" }

func (fecha) DependsOn() []string { return nil }

func (fecha) Run(ctx context.Context, env Env) error {
	rows := calendarRows(env.CalendarStart, env.CalendarEnd)

	spec := warehouse.TableSpec{
		Name:       "Dim_Fecha",
		PrimaryKey: "Fecha_Key",
		Columns: []warehouse.Column{
			{Name: "Fecha_Key", Type: "BIGINT"},
			{Name: "Fecha_Completa", Type: "DATE"},
			{Name: "Ano", Type: "INTEGER"},
			{Name: "Trimestre", Type: "INTEGER"},
			{Name: "Numero_Mes", Type: "INTEGER"},
			{Name: "Nombre_Mes", Type: "VARCHAR"},
			{Name: "Numero_Dia_Mes", Type: "INTEGER"},
			{Name: "Numero_Dia_Semana", Type: "INTEGER"},
			{Name: "Nombre_Dia_Semana", Type: "VARCHAR"},
			{Name: "Es_Fin_Semana", Type: "BOOLEAN"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Key, r.Dia.Time(), r.Ano, r.Trimestre, r.NumeroMes, r.NombreMes,
			r.NumeroDiaMes, r.NumeroDiaSemana, r.NombreDiaSemana, r.EsFinSemana,
		})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
