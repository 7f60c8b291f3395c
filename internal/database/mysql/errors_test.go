package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/ischematsv/internal/database"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want database.ErrKind
	}{
		{
			name: "access denied is a connection failure",
			err:  &gomysql.MySQLError{Number: 1045, Message: "Access denied for user"},
			want: database.ErrKindConnectionFailed,
		},
		{
			name: "unknown database is a connection failure",
			err:  &gomysql.MySQLError{Number: 1049, Message: "Unknown database 'shop'"},
			want: database.ErrKindConnectionFailed,
		},
		{
			name: "syntax error is a query failure",
			err:  &gomysql.MySQLError{Number: 1064, Message: "You have an error in your SQL syntax"},
			want: database.ErrKindQueryFailed,
		},
		{
			name: "unknown column is a query failure",
			err:  &gomysql.MySQLError{Number: 1054, Message: "Unknown column"},
			want: database.ErrKindQueryFailed,
		},
		{
			name: "unrecognized server error defaults to query failure",
			err:  &gomysql.MySQLError{Number: 9999, Message: "something new"},
			want: database.ErrKindQueryFailed,
		},
		{
			name: "deadline exceeded is a timeout",
			err:  fmt.Errorf("ping: %w", context.DeadlineExceeded),
			want: database.ErrKindTimeout,
		},
		{
			name: "cancellation is a timeout",
			err:  context.Canceled,
			want: database.ErrKindTimeout,
		},
		{
			name: "no rows is not found",
			err:  sql.ErrNoRows,
			want: database.ErrKindNotFound,
		},
		{
			name: "transport error is a connection failure",
			err:  errors.New("dial tcp: connection refused"),
			want: database.ErrKindConnectionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err, "op failed")
			var dbErr *database.DBError
			require.ErrorAs(t, mapped, &dbErr)
			assert.Equal(t, tt.want, dbErr.Kind)
			assert.ErrorIs(t, mapped, tt.err, "cause must stay on the chain")
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, mapError(nil, "op"))
}
