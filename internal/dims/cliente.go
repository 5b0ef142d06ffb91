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

const extractClientesSQL = `
SELECT
    cliente_id,
    nombre,
    sector
FROM
    public.cliente
ORDER BY
    cliente_id`

type clienteSrc struct {
	ID     int64
	Nombre string
	Sector *string
}

type clienteRow struct {
	Key    int64
	ID     int64
	Nombre string
	Sector *string
}

type cliente struct{}

func (cliente) Name() string { return "Dim_Cliente" }

func (cliente) DependsOn() []string { return nil }

func (cliente) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "clientes", extractClientesSQL,
		func(rows pgx.Rows) (clienteSrc, error) {
			var c clienteSrc
			err := rows.Scan(&c.ID, &c.Nombre, &c.Sector)
			return c, err
		})
	if err != nil {
		return err
	}

	b := etl.Builder[clienteSrc, clienteRow]{
		Transform: func(c clienteSrc) (clienteRow, error) {
			return clienteRow{ID: c.ID, Nombre: c.Nombre, Sector: c.Sector}, nil
		},
		SetKey: func(r *clienteRow, key int64) { r.Key = key },
	}
	rows, err := b.Build(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Cliente",
		PrimaryKey: "Cliente_Key",
		Columns: []warehouse.Column{
			{Name: "Cliente_Key", Type: "BIGINT"},
			{Name: "Cliente_ID_Operacional", Type: "BIGINT"},
			{Name: "Nombre_Cliente", Type: "VARCHAR"},
			{Name: "Industria_Cliente", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.ID, r.Nombre, r.Sector})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
