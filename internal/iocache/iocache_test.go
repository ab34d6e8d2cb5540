package iocache

import (
	"testing"

	"github.com/courtside/watchdex/schema"
	"github.com/stretchr/testify/assert"
)

// TestValidateTableName tests the dynamic table name guard.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{name: "simple", table: "watchdex_api_cache", wantErr: false},
		{name: "leading underscore", table: "_cache", wantErr: false},
		{name: "empty", table: "", wantErr: true},
		{name: "leading digit", table: "1cache", wantErr: true},
		{name: "injection attempt", table: "cache; DROP TABLE users", wantErr: true},
		{name: "quoted", table: `cache"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestQuoteTableName quotes per backend dialect.
func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`games`", quoteTableName("games", schema.MySQLBackend))
	assert.Equal(t, `"games"`, quoteTableName("games", schema.PostgreSQLBackend))
	assert.Equal(t, `"games"`, quoteTableName("games", schema.SQLiteBackend))
}

// TestManagerClose tolerates closing unopened stores.
func TestManagerClose(t *testing.T) {
	mgr := &StoreManagerImpl{}
	assert.NoError(t, mgr.Close())
	assert.Nil(t, mgr.GetCacheStore())
	assert.Nil(t, mgr.GetRunStore())
}
