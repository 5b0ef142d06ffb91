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

const extractTiposServicioSQL = `
SELECT
    id,
    nombre
FROM
    public.mensajeria_tiposervicio
ORDER BY
    id`

// urgenciaClassifier buckets the free-text service-type description into
// a closed urgency category. The rule order is the contract: the first
// matching rule wins, anything unmatched is Baja.
var urgenciaClassifier = etl.Classifier{
	Rules: []etl.Rule{
		{Category: "Alta", Keywords: []string{"urgente", "urgencia", "vital"}},
		{Category: "Media", Keywords: []string{"normal", "2-3", "comercial", "clínico", "clinico"}},
		{Category: "Baja", Keywords: []string{"administrativo"}},
	},
	Default: "Baja",
}

type urgenciaSrc struct {
	ID          int64
	Descripcion *string
}

type urgenciaRow struct {
	Key         int64
	ID          int64
	Descripcion string
	Categoria   string
}

type urgencia struct{}

func (urgencia) Name() string { return "Dim_Urgencia_Servicio" }

func (urgencia) DependsOn() []string { return nil }

func (urgencia) Run(ctx context.Context, env Env) error {
	src, err := source.Extract(ctx, env.Source, "tipos de servicio", extractTiposServicioSQL,
		func(rows pgx.Rows) (urgenciaSrc, error) {
			var u urgenciaSrc
			err := rows.Scan(&u.ID, &u.Descripcion)
			return u, err
		})
	if err != nil {
		return err
	}

	rows, err := buildUrgencia(src)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       "Dim_Urgencia_Servicio",
		PrimaryKey: "Urgencia_Servicio_Key",
		Columns: []warehouse.Column{
			{Name: "Urgencia_Servicio_Key", Type: "BIGINT"},
			{Name: "Urgencia_ID_Operacional", Type: "BIGINT"},
			{Name: "Descripcion_Urgencia", Type: "VARCHAR"},
			{Name: "Categoria_Urgencia", Type: "VARCHAR"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{r.Key, r.ID, r.Descripcion, r.Categoria})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}

func buildUrgencia(src []urgenciaSrc) ([]urgenciaRow, error) {
	b := etl.Builder[urgenciaSrc, urgenciaRow]{
		Transform: func(u urgenciaSrc) (urgenciaRow, error) {
			// A null description cannot be categorized; surfacing it beats
			// silently defaulting a data-quality problem away.
			if u.Descripcion == nil {
				return urgenciaRow{}, &etl.TransformError{
					Step:   "Dim_Urgencia_Servicio",
					Key:    fmt.Sprint(u.ID),
					Reason: "service-type description is null",
				}
			}
			return urgenciaRow{
				ID:          u.ID,
				Descripcion: *u.Descripcion,
				Categoria:   urgenciaClassifier.Classify(*u.Descripcion),
			}, nil
		},
		SetKey: func(r *urgenciaRow, key int64) { r.Key = key },
	}
	return b.Build(src)
}
