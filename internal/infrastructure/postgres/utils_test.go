package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ────────────────────────────────────────────────────────────────
// paginate
// ────────────────────────────────────────────────────────────────

func TestPaginate_DefaultsYTope(t *testing.T) {
	cases := []struct {
		name          string
		limit, offset int
		want          string
	}{
		{"sin límite usa 20", 0, 0, "SELECT id FROM t LIMIT 20 OFFSET 0"},
		{"respeta límite válido", 50, 10, "SELECT id FROM t LIMIT 50 OFFSET 10"},
		{"recorta a 100", 500, 0, "SELECT id FROM t LIMIT 100 OFFSET 0"},
		{"offset negativo a cero", 5, -3, "SELECT id FROM t LIMIT 5 OFFSET 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, _, err := paginate(psql.Select("id").From("t"), tc.limit, tc.offset).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tc.want, sql)
		})
	}
}

func TestPsql_UsaPlaceholdersDolar(t *testing.T) {
	sql, args, err := psql.Select("id").From("production_orders").
		Where("status = ?", "Released").
		Where("part_number_id = ?", "pn-1").
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM production_orders WHERE status = $1 AND part_number_id = $2", sql)
	assert.Equal(t, []any{"Released", "pn-1"}, args)
}

// ────────────────────────────────────────────────────────────────
// isUniqueViolation
// ────────────────────────────────────────────────────────────────

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
}

func TestNullString(t *testing.T) {
	assert.Nil(t, nullString(""))
	require.NotNil(t, nullString("x"))
	assert.Equal(t, "x", *nullString("x"))
	assert.Equal(t, "", derefString(nil))
}

// ────────────────────────────────────────────────────────────────
// migraciones
// ────────────────────────────────────────────────────────────────

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/aurexia?sslmode=disable", pgx5URL("postgres://u:p@db:5432/aurexia?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/aurexia", pgx5URL("postgresql://u@db/aurexia"))
	assert.Equal(t, "pgx5://ya/listo", pgx5URL("pgx5://ya/listo"))
}

func TestMigrationsEmbebidas_ParesUpDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_init.up.sql",
		"migrations/000001_init.down.sql",
		"migrations/000002_seed_reference_data.up.sql",
		"migrations/000002_seed_reference_data.down.sql",
	}, files)
}
