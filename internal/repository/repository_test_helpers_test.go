package repository

import (
	"database/sql/driver"
	"encoding/json"
	"reflect"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

// jsonArg matches a jsonb argument by its decoded content.
type jsonArg struct {
	want interface{}
}

func (a jsonArg) Match(v driver.Value) bool {
	raw, ok := v.([]byte)
	if !ok {
		return false
	}
	var got, want interface{}
	if err := json.Unmarshal(raw, &got); err != nil {
		return false
	}
	encoded, err := json.Marshal(a.want)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(encoded, &want); err != nil {
		return false
	}
	return reflect.DeepEqual(got, want)
}
