package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://app:pw@db:5432/almacen?sslmode=disable", migrateURL("postgres://app:pw@db:5432/almacen?sslmode=disable"))
	assert.Equal(t, "pgx5://app@db/almacen", migrateURL("postgresql://app@db/almacen"))
	assert.Equal(t, "pgx5://ya", migrateURL("pgx5://ya"))
}
