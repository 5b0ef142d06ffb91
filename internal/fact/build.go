//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package fact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fastandsafe/courier-dwh/internal/dims"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

// The extraction joins each state-change with its service for context:
// client, courier, service type, origin site, destination and the
// service's most recent novelty. The ORDER BY keeps surrogate key
// assignment reproducible across runs.
const extractEventosSQL = `
SELECT
    es.id,
    es.servicio_id,
    es.estado_id,
    es.fecha,
    es.hora::text,
    s.cliente_id,
    s.mensajero_id,
    s.tipo_servicio_id,
    uaq.sede_id,
    (SELECT d.ciudad_id FROM public.mensajeria_destinoservicio d WHERE d.id = s.destino_id),
    (SELECT d.direccion FROM public.mensajeria_destinoservicio d WHERE d.id = s.destino_id),
    (SELECT mn.tipo_novedad_id FROM public.mensajeria_novedadesservicio mn
     WHERE mn.servicio_id = s.id ORDER BY mn.fecha_novedad DESC, mn.id DESC LIMIT 1)
FROM
    public.mensajeria_estadosservicio es
JOIN
    public.mensajeria_servicio s ON es.servicio_id = s.id
LEFT JOIN
    public.clientes_usuarioaquitoy uaq ON s.usuario_id = uaq.id
ORDER BY
    es.id`

type build struct{}

func (build) Name() string { return factTable }

func (build) DependsOn() []string {
	return []string{
		"Dim_Fecha",
		"Dim_Hora",
		"Dim_Cliente",
		"Dim_Geografia",
		"Dim_Sede",
		"Dim_Mensajero",
		"Dim_Urgencia_Servicio",
		"Dim_Estado_Servicio",
		"Dim_Novedad",
	}
}

func (build) Run(ctx context.Context, env dims.Env) error {
	events, err := source.Extract(ctx, env.Source, "cambios de estado", extractEventosSQL,
		func(rows pgx.Rows) (Event, error) {
			var ev Event
			err := rows.Scan(
				&ev.ID, &ev.ServicioID, &ev.EstadoID, &ev.Fecha, &ev.Hora,
				&ev.ClienteID, &ev.MensajeroID, &ev.TipoServicioID,
				&ev.SedeOrigenID, &ev.GeografiaDestinoID, &ev.DireccionDestino,
				&ev.TipoNovedadID,
			)
			return ev, err
		})
	if err != nil {
		return err
	}

	lk, err := LoadLookups(ctx, env.Warehouse)
	if err != nil {
		return err
	}

	rows, err := Assemble(events, lk)
	if err != nil {
		return err
	}

	spec := warehouse.TableSpec{
		Name:       factTable,
		PrimaryKey: "Servicio_Estado_Key",
		Columns: []warehouse.Column{
			{Name: "Servicio_Estado_Key", Type: "BIGINT"},
			{Name: "Fecha_Key", Type: "BIGINT"},
			{Name: "Hora_Key", Type: "BIGINT"},
			{Name: "Cliente_Key", Type: "BIGINT"},
			{Name: "Sede_Origen_Key", Type: "BIGINT"},
			{Name: "Geografia_Destino_Key", Type: "BIGINT"},
			{Name: "Mensajero_Key", Type: "BIGINT"},
			{Name: "Estado_Servicio_Key", Type: "BIGINT"},
			{Name: "Urgencia_Servicio_Key", Type: "BIGINT"},
			{Name: "Novedad_Key", Type: "BIGINT"},
			{Name: "Servicio_ID_Operacional", Type: "BIGINT"},
			{Name: "Direccion_Destino", Type: "VARCHAR"},
			{Name: "Timestamp_Estado", Type: "TIMESTAMP"},
			{Name: "Contador_Estados", Type: "INTEGER"},
		},
	}

	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Key, r.FechaKey, r.HoraKey, r.ClienteKey, r.SedeOrigenKey,
			r.GeografiaDestinoKey, r.MensajeroKey, r.EstadoKey, r.UrgenciaKey,
			r.NovedadKey, r.ServicioID, r.DireccionDestino, r.Timestamp, r.Contador,
		})
	}

	return env.Warehouse.ReplaceTable(ctx, spec, records)
}

// LoadLookups reads back the minimal projection of every dimension the
// fact joins against. Any dimension missing from the warehouse surfaces
// as a DependencyError before a single event is resolved.
func LoadLookups(ctx context.Context, store *warehouse.Store) (Lookups, error) {
	var lk Lookups
	var err error

	if lk.Fecha, err = store.LookupDate(ctx, "Dim_Fecha", "Fecha_Key", "Fecha_Completa"); err != nil {
		return Lookups{}, err
	}
	if lk.Hora, err = store.LookupTimeOfDay(ctx, "Dim_Hora", "Hora_Key", "Hora_Completa"); err != nil {
		return Lookups{}, err
	}
	if lk.Cliente, err = store.LookupInt(ctx, "Dim_Cliente", "Cliente_Key", "Cliente_ID_Operacional"); err != nil {
		return Lookups{}, err
	}
	if lk.Sede, err = store.LookupInt(ctx, "Dim_Sede", "Sede_Key", "Sede_ID_Operacional"); err != nil {
		return Lookups{}, err
	}
	if lk.Geografia, err = store.LookupInt(ctx, "Dim_Geografia", "Geografia_Key", "Ciudad_ID_Operacional"); err != nil {
		return Lookups{}, err
	}
	if lk.Mensajero, err = store.LookupInt(ctx, "Dim_Mensajero", "Mensajero_Key", "Mensajero_ID_Operacional"); err != nil {
		return Lookups{}, err
	}
	if lk.Estado, err = store.LookupInt(ctx, "Dim_Estado_Servicio", "Estado_Servicio_Key", "Orden_Estado"); err != nil {
		return Lookups{}, err
	}
	if lk.Urgencia, err = store.LookupInt(ctx, "Dim_Urgencia_Servicio", "Urgencia_Servicio_Key", "Urgencia_ID_Operacional"); err != nil {
		return Lookups{}, err
	}
	if lk.Novedad, err = store.LookupInt(ctx, "Dim_Novedad", "Novedad_Key", "Novedad_ID_Operacional"); err != nil {
		return Lookups{}, err
	}

	sinNovedad, ok := lk.Novedad.Resolve(-1)
	if !ok {
		return Lookups{}, fmt.Errorf("Dim_Novedad has no 'Sin Novedad' sentinel row")
	}
	lk.SinNovedadKey = sinNovedad

	return lk, nil
}

func init() {
	dims.Register(build{})
}
