package errors

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestDumpExtractsPostgresFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation \"products\" does not exist", TableName: "products"}
	err := Query(fmt.Errorf("count: %w", pgErr), "count listings")

	dump := Dump(err)
	require.Equal(t, CodeQuery, dump.Code)
	require.Equal(t, "42P01", dump.PGCode)
	require.Equal(t, "products", dump.PGTable)
	require.Len(t, dump.Chain, 3)

	fields := dump.Fields()
	require.Equal(t, "42P01", fields["pg_code"])
	require.NotContains(t, fields, "pg_constraint")
}

func TestDumpNil(t *testing.T) {
	require.Equal(t, ErrorDump{}, Dump(nil))
}
