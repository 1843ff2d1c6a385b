package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// scriptedRow answers one QueryRow call with fixed column values or an error
type scriptedRow struct {
	values []any
	err    error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d columns", len(dest), len(r.values))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if r.values[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

type statement struct {
	sql  string
	args []any
}

// statementLog records every statement in the order it was sent
type statementLog struct {
	statements []statement
}

func (l *statementLog) add(sql string, args []any) {
	l.statements = append(l.statements, statement{sql: sql, args: args})
}

// verbs returns the leading SQL keyword of each statement
func (l *statementLog) verbs() []string {
	out := make([]string, 0, len(l.statements))
	for _, s := range l.statements {
		out = append(out, strings.Fields(s.sql)[0])
	}
	return out
}

func nextRow(rows *[]scriptedRow) scriptedRow {
	if len(*rows) == 0 {
		return scriptedRow{err: errors.New("unexpected query")}
	}
	r := (*rows)[0]
	*rows = (*rows)[1:]
	return r
}

// fakeDB serves scripted rows in order and hands out a single fakeTx
type fakeDB struct {
	statementLog
	rows     []scriptedRow
	tx       *fakeTx
	beginErr error
}

var _ DB = (*fakeDB)(nil)

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.add(sql, args)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.add(sql, args)
	return nil, errors.New("query not scripted")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.add(sql, args)
	return nextRow(&f.rows)
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.tx == nil {
		f.tx = &fakeTx{}
	}
	return f.tx, nil
}

// fakeTx implements the pgx.Tx methods the repositories call
type fakeTx struct {
	pgx.Tx
	statementLog
	rows       []scriptedRow
	execErr    error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	t.add(sql, args)
	return nextRow(&t.rows)
}

func (t *fakeTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.add(sql, args)
	if t.execErr != nil {
		return pgconn.CommandTag{}, t.execErr
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
