//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package seed creates the operational courier schema in PostgreSQL and
// fills it with synthetic data, so the warehouse load can be exercised
// without access to a production system.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Operational schema of the courier system. Table and column names match
// the production system the extractions read from.
const createSchemaSQL = `
-- Departamento: first-level administrative division
CREATE TABLE IF NOT EXISTS departamento (
    departamento_id INTEGER PRIMARY KEY,
    nombre          VARCHAR(100) NOT NULL
);

-- Ciudad: cities, each within a department
CREATE TABLE IF NOT EXISTS ciudad (
    ciudad_id       INTEGER PRIMARY KEY,
    nombre          VARCHAR(100) NOT NULL,
    departamento_id INTEGER NOT NULL REFERENCES departamento(departamento_id)
);

-- Cliente: client companies that request courier services
CREATE TABLE IF NOT EXISTS cliente (
    cliente_id INTEGER PRIMARY KEY,
    nombre     VARCHAR(200) NOT NULL,
    sector     VARCHAR(100)
);

-- Sede: client branch offices
CREATE TABLE IF NOT EXISTS sede (
    sede_id    INTEGER PRIMARY KEY,
    nombre     VARCHAR(200) NOT NULL,
    direccion  VARCHAR(200),
    cliente_id INTEGER NOT NULL REFERENCES cliente(cliente_id),
    ciudad_id  INTEGER REFERENCES ciudad(ciudad_id)
);

-- Platform user accounts (couriers and client staff)
CREATE TABLE IF NOT EXISTS auth_user (
    id         INTEGER PRIMARY KEY,
    username   VARCHAR(150) NOT NULL,
    first_name VARCHAR(150) NOT NULL,
    last_name  VARCHAR(150) NOT NULL,
    email      VARCHAR(254) NOT NULL
);

-- Mensajero: courier profile linked to a user account
CREATE TABLE IF NOT EXISTS clientes_mensajeroaquitoy (
    id        INTEGER PRIMARY KEY,
    user_id   INTEGER NOT NULL REFERENCES auth_user(id),
    telefono  VARCHAR(30),
    activo    BOOLEAN NOT NULL DEFAULT TRUE
);

-- Usuario: client staff member who requests services from a branch
CREATE TABLE IF NOT EXISTS clientes_usuarioaquitoy (
    id         INTEGER PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES auth_user(id),
    cliente_id INTEGER NOT NULL REFERENCES cliente(cliente_id),
    sede_id    INTEGER REFERENCES sede(sede_id)
);

CREATE TABLE IF NOT EXISTS mensajeria_tipovehiculo (
    id     INTEGER PRIMARY KEY,
    nombre VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS mensajeria_tiposervicio (
    id     INTEGER PRIMARY KEY,
    nombre VARCHAR(200) NOT NULL
);

-- Operational state catalog; id doubles as progression order
CREATE TABLE IF NOT EXISTS mensajeria_estado (
    id     INTEGER PRIMARY KEY,
    nombre VARCHAR(100) NOT NULL
);

CREATE TABLE IF NOT EXISTS mensajeria_tiponovedad (
    id     INTEGER PRIMARY KEY,
    nombre VARCHAR(200) NOT NULL
);

-- Destino: delivery destination of a service
CREATE TABLE IF NOT EXISTS mensajeria_destinoservicio (
    id        INTEGER PRIMARY KEY,
    ciudad_id INTEGER REFERENCES ciudad(ciudad_id),
    direccion VARCHAR(200) NOT NULL
);

-- Servicio: one courier service request
CREATE TABLE IF NOT EXISTS mensajeria_servicio (
    id               INTEGER PRIMARY KEY,
    cliente_id       INTEGER REFERENCES cliente(cliente_id),
    usuario_id       INTEGER REFERENCES clientes_usuarioaquitoy(id),
    mensajero_id     INTEGER REFERENCES clientes_mensajeroaquitoy(id),
    tipo_servicio_id INTEGER REFERENCES mensajeria_tiposervicio(id),
    tipo_vehiculo_id INTEGER REFERENCES mensajeria_tipovehiculo(id),
    destino_id       INTEGER REFERENCES mensajeria_destinoservicio(id),
    fecha_solicitud  DATE NOT NULL,
    hora_solicitud   TIME NOT NULL
);

-- One row per state the service has passed through
CREATE TABLE IF NOT EXISTS mensajeria_estadosservicio (
    id          INTEGER PRIMARY KEY,
    servicio_id INTEGER NOT NULL REFERENCES mensajeria_servicio(id),
    estado_id   INTEGER NOT NULL REFERENCES mensajeria_estado(id),
    fecha       DATE NOT NULL,
    hora        TIME NOT NULL
);

-- Incidents reported against a service
CREATE TABLE IF NOT EXISTS mensajeria_novedadesservicio (
    id              INTEGER PRIMARY KEY,
    servicio_id     INTEGER NOT NULL REFERENCES mensajeria_servicio(id),
    tipo_novedad_id INTEGER NOT NULL REFERENCES mensajeria_tiponovedad(id),
    fecha_novedad   TIMESTAMP NOT NULL,
    descripcion     VARCHAR(500)
);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS mensajeria_novedadesservicio CASCADE;
DROP TABLE IF EXISTS mensajeria_estadosservicio CASCADE;
DROP TABLE IF EXISTS mensajeria_servicio CASCADE;
DROP TABLE IF EXISTS mensajeria_destinoservicio CASCADE;
DROP TABLE IF EXISTS mensajeria_tiponovedad CASCADE;
DROP TABLE IF EXISTS mensajeria_estado CASCADE;
DROP TABLE IF EXISTS mensajeria_tiposervicio CASCADE;
DROP TABLE IF EXISTS mensajeria_tipovehiculo CASCADE;
DROP TABLE IF EXISTS clientes_usuarioaquitoy CASCADE;
DROP TABLE IF EXISTS clientes_mensajeroaquitoy CASCADE;
DROP TABLE IF EXISTS auth_user CASCADE;
DROP TABLE IF EXISTS sede CASCADE;
DROP TABLE IF EXISTS cliente CASCADE;
DROP TABLE IF EXISTS ciudad CASCADE;
DROP TABLE IF EXISTS departamento CASCADE;
`

// CreateSchema creates the operational schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops the operational schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
