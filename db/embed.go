// Package db provides the embedded database migrations and seed data.
package db

import "embed"

// Migrations holds the golang-migrate up/down files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// SeedProducts is the development catalog in JSON.
//
//go:embed seed/products.json
var SeedProducts []byte
