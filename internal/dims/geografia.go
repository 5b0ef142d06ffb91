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

const extractGeografiaSQL = `
SELECT
    c.ciudad_id,
    c.nombre,
    d.nombre
FROM
    public.ciudad c
JOIN
    public.departamento d ON c.departamento_id = d.departamento_id
ORDER BY
    c.ciudad_id`

// The operational system only covers domestic geography.
const paisPorDefecto = "Colombia"

type geografiaSrc struct {
	CiudadID     int64
	Ciudad       string
	Departamento string
}

type geografiaRow struct {
	Key          int64
	CiudadID     int64
	Ciudad       string
	Departamento string
	Pais         string
}

type geografia struct{}

func (geografia) Name() string { return "Dim_Geografia" }

func (geografia) DependsOn() []string { return nil }

func (geografia) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "geografia", extractGeografiaSQL,
		func(rows pgx.Rows) (geografiaSrc, error) {
			var g geografiaSrc
			err := rows.Scan(&g.CiudadID, &g.Ciudad, &g.Departamento)
			return g, err
		})
	if err != nil {
		return err
	}

	b := etl.Builder[geografiaSrc, geografiaRow]{
		Transform: func(g geografiaSrc) (geografiaRow, error) {
			return geografiaRow{
				CiudadID:     g.CiudadID,
				Ciudad:       g.Ciudad,
				Departamento: g.Departamento,
				Pais:         paisPorDefecto,
			}, nil
		},
		SetKey: func(r *geografiaRow, key int64) { r.Key = key },
	}
	rows, err := b.Build(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Geografia",
		PrimaryKey: "Geografia_Key",
		Columns: []warehouse.Column{
			{Name: "Geografia_Key", Type: "BIGINT"},
			{Name: "Ciudad_ID_Operacional", Type: "BIGINT"},
			{Name: "Ciudad", Type: "VARCHAR"},
			{Name: "Departamento", Type: "VARCHAR"},
			{Name: "Pais", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.CiudadID, r.Ciudad, r.Departamento, r.Pais})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
