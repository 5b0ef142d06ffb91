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

	"github.com/jackc/pgx/v5"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

const extractNovedadesSQL = `
SELECT
    id,
    nombre
FROM
    public.mensajeria_tiponovedad
ORDER BY
    id`

// The sentinel row representing a service with no reported incident. It
// is prepended before key assignment so it always takes surrogate key 1,
// giving consumers a fixed address for "sin novedad".
const (
	sinNovedadID          int64 = -1
	sinNovedadDescripcion       = "Sin Novedad"
	sinNovedadCategoria         = "Ninguna"
)

type novedadSrc struct {
	ID     int64
	Nombre string
}

type novedadRow struct {
	Key         int64
	ID          int64
	Descripcion string
	Categoria   string
}

type novedad struct{}

func (novedad) Name() string { return "Dim_Novedad" }

func (novedad) DependsOn() []string { return nil }

func (novedad) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "tipos de novedad", extractNovedadesSQL,
		func(rows pgx.Rows) (novedadSrc, error) {
			var n novedadSrc
			err := rows.Scan(&n.ID, &n.Nombre)
			return n, err
		})
	if err != nil {
		return err
	}

	rows, err := buildNovedad(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Novedad",
		PrimaryKey: "Novedad_Key",
		Columns: []warehouse.Column{
			{Name: "Novedad_Key", Type: "BIGINT"},
			{Name: "Novedad_ID_Operacional", Type: "BIGINT"},
			{Name: "Descripcion_Novedad", Type: "VARCHAR"},
			{Name: "Categoria_Novedad", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.ID, r.Descripcion, r.Categoria})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}

func buildNovedad(src []novedadSrc) ([]novedadRow, error) {
	b := etl.Builder[novedadSrc, novedadRow]{
		Transform: func(n novedadSrc) (novedadRow, error) {
			return novedadRow{ID: n.ID, Descripcion: n.Nombre, Categoria: "General"}, nil
		},
		Sentinel: &novedadRow{
			ID:          sinNovedadID,
			Descripcion: sinNovedadDescripcion,
			Categoria:   sinNovedadCategoria,
		},
		SetKey: func(r *novedadRow, key int64) { r.Key = key },
	}
	return b.Build(src)
}
