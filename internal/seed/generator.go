//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastandsafe/courier-dwh/internal/config"
	"github.com/fastandsafe/courier-dwh/internal/logging"
)

// Catalogs are fixed rather than faked so the generated data always
// exercises every urgency category and every operational state.
var (
	departamentos = []string{"Antioquia", "Cundinamarca", "Valle del Cauca", "Atlántico", "Santander"}

	ciudades = []struct {
		Nombre       string
		Departamento int // 1-based index into departamentos
	}{
		{"Medellín", 1}, {"Envigado", 1}, {"Itagüí", 1},
		{"Bogotá", 2}, {"Soacha", 2}, {"Chía", 2},
		{"Cali", 3}, {"Palmira", 3},
		{"Barranquilla", 4}, {"Soledad", 4},
		{"Bucaramanga", 5}, {"Floridablanca", 5},
	}

	tiposVehiculo = []string{"Moto", "Bicicleta", "Carro", "Furgón"}

	tiposServicio = []string{
		"Servicio Urgente",
		"Mensajería Vital",
		"Entrega Normal (2-3 días)",
		"Recogida Comercial",
		"Transporte de Muestras Clínicas",
		"Trámite Administrativo",
	}

	estados = []string{
		"Iniciado",
		"Con mensajero Asignado",
		"Recogido por mensajero",
		"Entregado en destino",
		"Terminado completo",
	}

	tiposNovedad = []string{
		"Dirección errada",
		"Cliente ausente",
		"Vehículo averiado",
		"Paquete dañado",
		"Retraso por tráfico",
	}

	sectores = []string{"Salud", "Comercial", "Industrial", "Financiero", "Educativo", "Logístico"}
)

// Request windows stay inside the default calendar dimension range so a
// seeded database loads without widening the calendar.
var (
	ventanaInicio = time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC)
	ventanaFin    = time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC)
)

// Generator produces synthetic operational data.
type Generator struct {
	faker *gofakeit.Faker
	cfg   config.SeedConfig
}

// NewGenerator creates a generator with a time-based seed.
func NewGenerator(cfg config.SeedConfig) *Generator {
	return NewGeneratorWithSeed(cfg, uint64(time.Now().UnixNano()))
}

// NewGeneratorWithSeed creates a generator with a fixed seed for
// reproducible data.
func NewGeneratorWithSeed(cfg config.SeedConfig, seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
		cfg:   cfg,
	}
}

// Run fills the operational schema. Catalogs first, then geography,
// clients and couriers, then services with their state history and
// novelties.
func (g *Generator) Run(ctx context.Context, pool *pgxpool.Pool) error {
	logging.Info().
		Int("clients", g.cfg.Clients).
		Int("couriers", g.cfg.Couriers).
		Int("services", g.cfg.Services).
		Msg("Generating operational data")

	if err := g.generateCatalogs(ctx, pool); err != nil {
		return fmt.Errorf("failed to generate catalogs: %w", err)
	}
	if err := g.generateGeografia(ctx, pool); err != nil {
		return fmt.Errorf("failed to generate geography: %w", err)
	}
	usuarios, err := g.generateClientes(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to generate clients: %w", err)
	}
	if err := g.generateMensajeros(ctx, pool); err != nil {
		return fmt.Errorf("failed to generate couriers: %w", err)
	}
	if err := g.generateServicios(ctx, pool, usuarios); err != nil {
		return fmt.Errorf("failed to generate services: %w", err)
	}

	logging.Info().Msg("Operational data generated")
	return nil
}

func (g *Generator) generateCatalogs(ctx context.Context, pool *pgxpool.Pool) error {
	catalogs := []struct {
		table string
		rows  []string
	}{
		{"mensajeria_tipovehiculo", tiposVehiculo},
		{"mensajeria_tiposervicio", tiposServicio},
		{"mensajeria_estado", estados},
		{"mensajeria_tiponovedad", tiposNovedad},
	}
	for _, c := range catalogs {
		for i, nombre := range c.rows {
			_, err := pool.Exec(ctx,
				fmt.Sprintf("INSERT INTO %s (id, nombre) VALUES ($1, $2)", c.table),
				i+1, nombre)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) generateGeografia(ctx context.Context, pool *pgxpool.Pool) error {
	for i, nombre := range departamentos {
		_, err := pool.Exec(ctx,
			"INSERT INTO departamento (departamento_id, nombre) VALUES ($1, $2)",
			i+1, nombre)
		if err != nil {
			return err
		}
	}
	for i, c := range ciudades {
		_, err := pool.Exec(ctx,
			"INSERT INTO ciudad (ciudad_id, nombre, departamento_id) VALUES ($1, $2, $3)",
			i+1, c.Nombre, c.Departamento)
		if err != nil {
			return err
		}
	}
	return nil
}

// usuarioRef ties a requesting staff member to their client, so generated
// services stay referentially consistent.
type usuarioRef struct {
	ID        int
	ClienteID int
}

func (g *Generator) generateClientes(ctx context.Context, pool *pgxpool.Pool) ([]usuarioRef, error) {
	var usuarios []usuarioRef
	sedeID := 0
	usuarioID := 0
	userID := 0

	for c := 1; c <= g.cfg.Clients; c++ {
		var sector any
		if g.faker.IntRange(1, 100) > 10 {
			sector = g.faker.RandomString(sectores)
		}
		_, err := pool.Exec(ctx,
			"INSERT INTO cliente (cliente_id, nombre, sector) VALUES ($1, $2, $3)",
			c, g.faker.Company(), sector)
		if err != nil {
			return nil, err
		}

		sedes := make([]int, 0, 3)
		for s := 0; s < g.faker.IntRange(1, 3); s++ {
			sedeID++
			var ciudad any
			if g.faker.IntRange(1, 100) > 5 {
				ciudad = g.faker.IntRange(1, len(ciudades))
			}
			_, err := pool.Exec(ctx,
				"INSERT INTO sede (sede_id, nombre, direccion, cliente_id, ciudad_id) VALUES ($1, $2, $3, $4, $5)",
				sedeID, fmt.Sprintf("Sede %s", g.faker.City()), g.faker.Street(), c, ciudad)
			if err != nil {
				return nil, err
			}
			sedes = append(sedes, sedeID)
		}

		for u := 0; u < g.faker.IntRange(1, 4); u++ {
			userID++
			if err := g.insertUser(ctx, pool, userID); err != nil {
				return nil, err
			}
			usuarioID++
			sede := sedes[g.faker.IntRange(0, len(sedes)-1)]
			_, err := pool.Exec(ctx,
				"INSERT INTO clientes_usuarioaquitoy (id, user_id, cliente_id, sede_id) VALUES ($1, $2, $3, $4)",
				usuarioID, userID, c, sede)
			if err != nil {
				return nil, err
			}
			usuarios = append(usuarios, usuarioRef{ID: usuarioID, ClienteID: c})
		}
	}

	logging.Debug().
		Int("clients", g.cfg.Clients).
		Int("sites", sedeID).
		Int("staff", usuarioID).
		Msg("Clients generated")
	return usuarios, nil
}

func (g *Generator) generateMensajeros(ctx context.Context, pool *pgxpool.Pool) error {
	// User ids continue after the staff accounts.
	var base int
	err := pool.QueryRow(ctx, "SELECT COALESCE(MAX(id), 0) FROM auth_user").Scan(&base)
	if err != nil {
		return err
	}

	for m := 1; m <= g.cfg.Couriers; m++ {
		userID := base + m
		if err := g.insertUser(ctx, pool, userID); err != nil {
			return err
		}
		_, err := pool.Exec(ctx,
			"INSERT INTO clientes_mensajeroaquitoy (id, user_id, telefono, activo) VALUES ($1, $2, $3, $4)",
			m, userID, g.faker.Phone(), g.faker.IntRange(1, 100) > 5)
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) insertUser(ctx context.Context, pool *pgxpool.Pool, id int) error {
	first := g.faker.FirstName()
	last := g.faker.LastName()
	username := strings.ToLower(fmt.Sprintf("%s.%s%d", first, last, id))
	_, err := pool.Exec(ctx,
		"INSERT INTO auth_user (id, username, first_name, last_name, email) VALUES ($1, $2, $3, $4, $5)",
		id, username, first, last, g.faker.Email())
	return err
}

func (g *Generator) generateServicios(ctx context.Context, pool *pgxpool.Pool, usuarios []usuarioRef) error {
	estadoID := 0
	novedadID := 0

	for s := 1; s <= g.cfg.Services; s++ {
		usuario := usuarios[g.faker.IntRange(0, len(usuarios)-1)]
		solicitud := g.faker.DateRange(ventanaInicio, ventanaFin)

		// Unassigned services model requests no courier has taken yet.
		var mensajero, vehiculo any
		if g.faker.IntRange(1, 100) > 10 {
			mensajero = g.faker.IntRange(1, g.cfg.Couriers)
			vehiculo = g.faker.IntRange(1, len(tiposVehiculo))
		}

		_, err := pool.Exec(ctx,
			"INSERT INTO mensajeria_destinoservicio (id, ciudad_id, direccion) VALUES ($1, $2, $3)",
			s, g.faker.IntRange(1, len(ciudades)), g.faker.Street())
		if err != nil {
			return err
		}

		_, err = pool.Exec(ctx, `
            INSERT INTO mensajeria_servicio
                (id, cliente_id, usuario_id, mensajero_id, tipo_servicio_id,
                 tipo_vehiculo_id, destino_id, fecha_solicitud, hora_solicitud)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        `,
			s, usuario.ClienteID, usuario.ID, mensajero,
			g.faker.IntRange(1, len(tiposServicio)), vehiculo, s,
			solicitud, solicitud.Format("15:04:05"))
		if err != nil {
			return err
		}

		for _, ev := range g.timeline(solicitud) {
			estadoID++
			_, err := pool.Exec(ctx, `
                INSERT INTO mensajeria_estadosservicio (id, servicio_id, estado_id, fecha, hora)
                VALUES ($1, $2, $3, $4, $5)
            `, estadoID, s, ev.EstadoID, ev.En, ev.En.Format("15:04:05"))
			if err != nil {
				return err
			}
		}

		for n := 0; n < g.novedadesPorServicio(); n++ {
			novedadID++
			_, err := pool.Exec(ctx, `
                INSERT INTO mensajeria_novedadesservicio
                    (id, servicio_id, tipo_novedad_id, fecha_novedad, descripcion)
                VALUES ($1, $2, $3, $4, $5)
            `, novedadID, s, g.faker.IntRange(1, len(tiposNovedad)),
				solicitud.Add(time.Duration(g.faker.IntRange(10, 600))*time.Minute),
				g.faker.Sentence(8))
			if err != nil {
				return err
			}
		}

		if s%100 == 0 {
			logging.Debug().Int("services", s).Int("total", g.cfg.Services).Msg("Services generated")
		}
	}

	logging.Debug().
		Int("services", g.cfg.Services).
		Int("state_changes", estadoID).
		Int("novelties", novedadID).
		Msg("Services generated")
	return nil
}

// estadoEvento is one step of a service's state history.
type estadoEvento struct {
	EstadoID int
	En       time.Time
}

// timeline walks a service through its states in operational order,
// starting at the request time. Not every service reaches the final
// state; each step happens minutes to hours after the previous one.
func (g *Generator) timeline(solicitud time.Time) []estadoEvento {
	alcanzado := g.faker.IntRange(1, len(estados))
	eventos := make([]estadoEvento, 0, alcanzado)
	en := solicitud
	for e := 1; e <= alcanzado; e++ {
		eventos = append(eventos, estadoEvento{EstadoID: e, En: en})
		en = en.Add(time.Duration(g.faker.IntRange(5, 240)) * time.Minute)
	}
	return eventos
}

func (g *Generator) novedadesPorServicio() int {
	if g.faker.IntRange(1, 100) <= 75 {
		return 0
	}
	return g.faker.IntRange(1, 2)
}
