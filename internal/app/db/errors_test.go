package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("load value: %w", pgx.ErrNoRows)) {
		t.Error("wrapped ErrNoRows not detected")
	}
	if IsNoRows(errors.New("boom")) {
		t.Error("plain error reported as no rows")
	}
}

func TestIsUndefinedTable(t *testing.T) {
	if !IsUndefinedTable(fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"})) {
		t.Error("undefined_table not detected")
	}
	if IsUndefinedTable(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation reported as undefined table")
	}
}
