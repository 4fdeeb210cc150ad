package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent and run at startup. Foreign keys and status
// CHECK constraints are enforced here so that no composite view can ever see a
// dangling reference.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		user_type TEXT NOT NULL CHECK (user_type IN ('client', 'provider', 'admin')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		address TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS providers (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		specialties TEXT[] NOT NULL DEFAULT '{}',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS wells (
		id UUID PRIMARY KEY,
		client_id UUID NOT NULL REFERENCES clients(id),
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active'
			CHECK (status IN ('active', 'maintenance', 'attention', 'inactive', 'problem')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_wells_client_id ON wells (client_id)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id UUID PRIMARY KEY,
		well_id UUID NOT NULL REFERENCES wells(id),
		provider_id UUID NOT NULL REFERENCES providers(id),
		visit_date TIMESTAMPTZ NOT NULL,
		service_type TEXT NOT NULL,
		visit_type TEXT NOT NULL CHECK (visit_type IN ('unique', 'periodic')),
		next_visit_date TIMESTAMPTZ,
		observations TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'in_progress', 'completed', 'cancelled')),
		photos TEXT[] NOT NULL DEFAULT '{}',
		documents TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_well_id ON visits (well_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_provider_id ON visits (provider_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_visit_date ON visits (visit_date DESC)`,
	`CREATE TABLE IF NOT EXISTS scheduled_visits (
		id UUID PRIMARY KEY,
		well_id UUID NOT NULL REFERENCES wells(id),
		provider_id UUID NOT NULL REFERENCES providers(id),
		scheduled_date TIMESTAMPTZ NOT NULL,
		service_type TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled', 'confirmed', 'completed', 'cancelled')),
		notes TEXT NOT NULL DEFAULT '',
		created_from_visit_id UUID REFERENCES visits(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_visits_well_id ON scheduled_visits (well_id)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY,
		visit_id UUID NOT NULL REFERENCES visits(id),
		client_id UUID NOT NULL REFERENCES clients(id),
		provider_id UUID NOT NULL REFERENCES providers(id),
		invoice_number TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL,
		service_value NUMERIC(12,2) NOT NULL DEFAULT 0,
		material_costs NUMERIC(12,2) NOT NULL DEFAULT 0,
		total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
		is_free BOOLEAN NOT NULL DEFAULT false,
		status TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'sent', 'paid', 'overdue', 'cancelled')),
		due_date TIMESTAMPTZ NOT NULL,
		sent_at TIMESTAMPTZ,
		paid_date TIMESTAMPTZ,
		payment_method TEXT NOT NULL DEFAULT ''
			CHECK (payment_method IN ('', 'boleto', 'pix', 'card', 'cash')),
		payment_url TEXT NOT NULL DEFAULT '',
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	// At most one non-cancelled invoice per visit.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_visit_active
		ON invoices (visit_id) WHERE status <> 'cancelled'`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_client_id ON invoices (client_id)`,
	`CREATE TABLE IF NOT EXISTS material_usages (
		id UUID PRIMARY KEY,
		visit_id UUID NOT NULL REFERENCES visits(id),
		material_type TEXT NOT NULL,
		quantity_grams NUMERIC(12,3) NOT NULL CHECK (quantity_grams >= 0),
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_material_usages_visit_id ON material_usages (visit_id)`,
	`CREATE TABLE IF NOT EXISTS water_parameters (
		id UUID PRIMARY KEY,
		visit_id UUID NOT NULL REFERENCES visits(id),
		ph DOUBLE PRECISION,
		chlorine_level DOUBLE PRECISION,
		turbidity DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_water_parameters_visit_id ON water_parameters (visit_id)`,
}

func applySchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
