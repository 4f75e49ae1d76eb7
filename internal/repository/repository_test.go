package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Limit: 5}, Page{}.Normalize())
	assert.Equal(t, Page{Limit: 100, Offset: 0}, Page{Limit: 1000, Offset: -3}.Normalize())
	assert.Equal(t, Page{Limit: 20, Offset: 40}, Page{Limit: 20, Offset: 40}.Normalize())
}

func TestWhereBuilder(t *testing.T) {
	var where whereBuilder
	where.add("artist_id", "art-1")
	where.add("hidden", false)

	query, args := where.build(`SELECT id FROM tracks`, "id ASC", Page{Limit: 10, Offset: 20})
	assert.Equal(t, `SELECT id FROM tracks WHERE 1=1 AND artist_id=$1 AND hidden=$2 ORDER BY id ASC LIMIT 10 OFFSET 20`, query)
	assert.Equal(t, []any{"art-1", false}, args)
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil))

	dup := mapWriteError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, ErrDuplicate)

	other := errors.New("timeout")
	assert.Equal(t, other, mapWriteError(other))
}

func TestDifference(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, difference([]string{"a", "b", "c"}, []string{"b", "d"}))
	assert.Empty(t, difference([]string{"a"}, []string{"a"}))
}
