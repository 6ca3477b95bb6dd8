package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches sql.ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped sql.ErrNoRows", func(t *testing.T) {
		err := fmt.Errorf("get season by id: %w", sql.ErrNoRows)
		if !isNotFound(err) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fakeErr("pq: relation seasons does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505 pq error", func(t *testing.T) {
		err := &pq.Error{Code: uniqueViolationCode}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("matches wrapped 23505 pq error", func(t *testing.T) {
		err := fmt.Errorf("insert join request: %w", &pq.Error{Code: uniqueViolationCode})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq error", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key value violates unique constraint")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestNullStringRoundTrip(t *testing.T) {
	t.Run("nil maps to invalid", func(t *testing.T) {
		if nullString(nil).Valid {
			t.Fatalf("expected invalid null string for nil")
		}
		if stringPtr(sql.NullString{}) != nil {
			t.Fatalf("expected nil pointer for invalid null string")
		}
	})

	t.Run("value survives the round trip", func(t *testing.T) {
		in := "reviewer-001"
		got := stringPtr(nullString(&in))
		if got == nil || *got != in {
			t.Fatalf("unexpected round trip result: %v", got)
		}
	})
}

func TestNullIntRoundTrip(t *testing.T) {
	t.Run("nil maps to invalid", func(t *testing.T) {
		if nullInt(nil).Valid {
			t.Fatalf("expected invalid null int for nil")
		}
		if intPtr(sql.NullInt64{}) != nil {
			t.Fatalf("expected nil pointer for invalid null int")
		}
	})

	t.Run("zero score stays a value", func(t *testing.T) {
		in := 0
		got := intPtr(nullInt(&in))
		if got == nil || *got != 0 {
			t.Fatalf("unexpected round trip result: %v", got)
		}
	})
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
