//go:build !integration

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type storedRow struct {
	userID      string
	raw         []byte
	activatedAt time.Time
}

// fakeExecutor understands the three statements subscriptionRepo issues.
type fakeExecutor struct {
	rows    map[string]storedRow
	execErr error
}

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{rows: make(map[string]storedRow)}
}

func (f *fakeExecutor) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if f.execErr != nil {
		return nil, f.execErr
	}
	if len(args) != 4 {
		return nil, fmt.Errorf("unexpected args: %v", args)
	}
	f.rows[args[0].(string)] = storedRow{
		userID:      args[1].(string),
		raw:         args[2].([]byte),
		activatedAt: args[3].(time.Time),
	}
	return pgconn.CommandTag("INSERT 0 1"), nil
}

func (f *fakeExecutor) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if len(args) == 0 {
		return fakeRow{scan: func(dest ...interface{}) error {
			*dest[0].(*int) = len(f.rows)
			return nil
		}}
	}
	id := args[0].(string)
	r, ok := f.rows[id]
	return fakeRow{scan: func(dest ...interface{}) error {
		if !ok {
			return pgx.ErrNoRows
		}
		*dest[0].(*string) = id
		*dest[1].(*string) = r.userID
		*dest[2].(*[]byte) = r.raw
		*dest[3].(*time.Time) = r.activatedAt
		return nil
	}}
}

type fakeRow struct {
	scan func(dest ...interface{}) error
}

func (r fakeRow) Scan(dest ...interface{}) error { return r.scan(dest...) }

var errConnRefused = errors.New("connection refused")
