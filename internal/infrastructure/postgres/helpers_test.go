package postgres

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (PgxPool, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
	})
	return mock, mock
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	require.Equal(t, `%rock%`, containsPattern("rock"))
	require.Equal(t, `%100\%%`, containsPattern("100%"))
	require.Equal(t, `%a\_b%`, containsPattern("a_b"))
	require.Equal(t, `%c:\\d%`, containsPattern(`c:\d`))
}

func TestNullable(t *testing.T) {
	require.Nil(t, nullable(""))
	require.Equal(t, "abc", nullable("abc"))
}
