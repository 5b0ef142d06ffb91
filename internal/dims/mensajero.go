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

// Each courier carries their single most-frequent vehicle type, picked by
// service count with row_number as the consistent tiebreak.
const extractMensajerosSQL = `
WITH vehiculo_frecuente AS (
    SELECT
        s.mensajero_id,
        s.tipo_vehiculo_id,
        ROW_NUMBER() OVER (PARTITION BY s.mensajero_id ORDER BY COUNT(*) DESC, s.tipo_vehiculo_id) AS rn
    FROM
        public.mensajeria_servicio s
    WHERE
        s.mensajero_id IS NOT NULL AND s.tipo_vehiculo_id IS NOT NULL
    GROUP BY
        s.mensajero_id, s.tipo_vehiculo_id
)
SELECT
    m.id,
    (u.first_name || ' ' || u.last_name),
    tv.nombre
FROM
    public.clientes_mensajeroaquitoy m
JOIN
    public.auth_user u ON m.user_id = u.id
LEFT JOIN
    vehiculo_frecuente vf ON m.id = vf.mensajero_id AND vf.rn = 1
LEFT JOIN
    public.mensajeria_tipovehiculo tv ON vf.tipo_vehiculo_id = tv.id
ORDER BY
    m.id`

// Fill literal for couriers who have never completed a service.
const vehiculoNoAsignado = "No asignado"

type mensajeroSrc struct {
	ID           int64
	Nombre       string
	TipoVehiculo *string
}

type mensajeroRow struct {
	Key          int64
	ID           int64
	Nombre       string
	TipoVehiculo string
}

type mensajero struct{}

func (mensajero) Name() string { return "Dim_Mensajero" }

func (mensajero) DependsOn() []string { return nil }

func (mensajero) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "mensajeros", extractMensajerosSQL,
		func(rows pgx.Rows) (mensajeroSrc, error) {
			var m mensajeroSrc
			err := rows.Scan(&m.ID, &m.Nombre, &m.TipoVehiculo)
			return m, err
		})
	if err != nil {
		return err
	}

	b := etl.Builder[mensajeroSrc, mensajeroRow]{
		Transform: func(m mensajeroSrc) (mensajeroRow, error) {
			vehiculo := vehiculoNoAsignado
			if m.TipoVehiculo != nil {
				vehiculo = *m.TipoVehiculo
			}
			return mensajeroRow{ID: m.ID, Nombre: m.Nombre, TipoVehiculo: vehiculo}, nil
		},
		SetKey: func(r *mensajeroRow, key int64) { r.Key = key },
	}
	rows, err := b.Build(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Mensajero",
		PrimaryKey: "Mensajero_Key",
		Columns: []warehouse.Column{
			{Name: "Mensajero_Key", Type: "BIGINT"},
			{Name: "Mensajero_ID_Operacional", Type: "BIGINT"},
			{Name: "Nombre_Mensajero", Type: "VARCHAR"},
			{Name: "Tipo_Vehiculo", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.ID, r.Nombre, r.TipoVehiculo})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}
