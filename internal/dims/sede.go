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
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

const extractSedesSQL = `
SELECT
    sede_id,
    nombre,
    direccion,
    cliente_id,
    ciudad_id
FROM
    public.sede
ORDER BY
    sede_id`

type sedeSrc struct {
	ID        int64
	Nombre    string
	Direccion *string
	ClienteID int64
	CiudadID  *int64
}

type sedeRow struct {
	Key          int64
	ID           int64
	Nombre       string
	ClienteKey   int64
	Direccion    *string
	GeografiaKey int64
}

// Dim_Sede is the one dependent dimension: it resolves its client and
// city against the already-loaded Dim_Cliente and Dim_Geografia. The
// client is mandatory; a site in an uncatalogued city keeps the -1
// sentinel geography key.
type sede struct{}

func (sede) Name() string { return "Dim_Sede" }

func (sede) DependsOn() []string { return []string{"Dim_Cliente", "Dim_Geografia"} }

func (sede) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "sedes", extractSedesSQL,
		func(rows pgx.Rows) (sedeSrc, error) {
			var s sedeSrc
			err := rows.Scan(&s.ID, &s.Nombre, &s.Direccion, &s.ClienteID, &s.CiudadID)
			return s, err
		})
	if err != nil {
		return err
	}

	clientes, err := env.Warehouse.LookupInt(ctx, "Dim_Cliente", "Cliente_Key", "Cliente_ID_Operacional")
	if err != nil {
		return err
	}
	geografia, err := env.Warehouse.LookupInt(ctx, "Dim_Geografia", "Geografia_Key", "Ciudad_ID_Operacional")
	if err != nil {
		return err
	}

	b := etl.Builder[sedeSrc, sedeRow]{
		Transform: func(s sedeSrc) (sedeRow, error) {
			clienteKey, ok := clientes.Resolve(s.ClienteID)
			if !ok {
				return sedeRow{}, &etl.TransformError{
					Step:   "Dim_Sede",
					Key:    fmt.Sprint(s.ID),
					Reason: fmt.Sprintf("no Dim_Cliente row matches cliente_id %d", s.ClienteID),
				}
			}
			return sedeRow{
				ID:           s.ID,
				Nombre:       s.Nombre,
				ClienteKey:   clienteKey,
				Direccion:    s.Direccion,
				GeografiaKey: etl.Optional(geografia, s.CiudadID, etl.SentinelKey),
			}, nil
		},
		SetKey: func(r *sedeRow, key int64) { r.Key = key },
	}
	rows, err := b.Build(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Sede",
		PrimaryKey: "Sede_Key",
		Columns: []warehouse.Column{
			{Name: "Sede_Key", Type: "BIGINT"},
			{Name: "Sede_ID_Operacional", Type: "BIGINT"},
			{Name: "Nombre_Sede", Type: "VARCHAR"},
			{Name: "Cliente_Key", Type: "BIGINT"},
			{Name: "Direccion_Sede", Type: "VARCHAR"},
			{Name: "Geografia_Key", Type: "BIGINT"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.ID, r.Nombre, r.ClienteKey, r.Direccion, r.GeografiaKey})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
