package contract

import (
	"testing"

	"github.com/huangsam/tabchart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, "sqlite"},
		{schema.MySQLBackend, "mysql"},
		{schema.PostgreSQLBackend, "pgx"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			got, err := DriverName(tt.backend)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DriverName(schema.NoneBackend)
	assert.Error(t, err)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`stocks`", QuoteIdent("stocks", schema.MySQLBackend))
	assert.Equal(t, `"stocks"`, QuoteIdent("stocks", schema.PostgreSQLBackend))
	assert.Equal(t, `"stocks"`, QuoteIdent("stocks", schema.SQLiteBackend))
}
