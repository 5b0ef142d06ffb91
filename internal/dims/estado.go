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

// The ORDER BY is part of the contract: states follow the process
// sequence of the operation, and surrogate keys are assigned in that
// order.
const extractEstadosSQL = `
SELECT
    id,
    nombre
FROM
    public.mensajeria_estado
ORDER BY
    id`

type estadoSrc struct {
	Orden  int64
	Nombre string
}

type estadoRow struct {
	Key    int64
	Orden  int64
	Nombre string
}

type estado struct{}

func (estado) Name() string { return "Dim_Estado_Servicio" }

func (estado) DependsOn() []string { return nil }

func (estado) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "estados de servicio", extractEstadosSQL,
		func(rows pgx.Rows) (estadoSrc, error) {
			var e estadoSrc
			err := rows.Scan(&e.Orden, &e.Nombre)
			return e, err
		})
	if err != nil {
		return err
	}

	b := etl.Builder[estadoSrc, estadoRow]{
		Transform: func(e estadoSrc) (estadoRow, error) {
			return estadoRow{Orden: e.Orden, Nombre: e.Nombre}, nil
		},
		SetKey: func(r *estadoRow, key int64) { r.Key = key },
	}
	rows, err := b.Build(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Estado_Servicio",
		PrimaryKey: "Estado_Servicio_Key",
		Columns: []warehouse.Column{
			{Name: "Estado_Servicio_Key", Type: "BIGINT"},
			{Name: "Orden_Estado", Type: "BIGINT"},
			{Name: "Nombre_Estado", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.Orden, r.Nombre})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
