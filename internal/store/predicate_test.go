package store

import (
	"strings"
	"testing"

	"priestconnect-api/internal/domain"
)

func TestCompilePredicates(t *testing.T) {
	where, args, err := compilePredicates([]domain.Predicate{
		domain.Eq("priestId", "p1"),
		domain.Like("location", "manila"),
		domain.Contains("services", "mass"),
	})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if !strings.Contains(where, `JSON_EXTRACT(doc, '$.priestId')`) {
		t.Fatalf("eq fragment missing from %q", where)
	}
	if !strings.Contains(where, "LIKE CONCAT") {
		t.Fatalf("like fragment missing from %q", where)
	}
	if !strings.Contains(where, "JSON_CONTAINS") {
		t.Fatalf("contains fragment missing from %q", where)
	}
	if len(args) != 3 || args[0] != "p1" || args[1] != "manila" || args[2] != "mass" {
		t.Fatalf("args out of order: %v", args)
	}
}

func TestCompilePredicatesRejectsBadFieldName(t *testing.T) {
	_, _, err := compilePredicates([]domain.Predicate{
		domain.Eq("priestId'); DROP TABLE documents; --", "x"),
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestCompilePredicatesRejectsUnknownOp(t *testing.T) {
	_, _, err := compilePredicates([]domain.Predicate{{Field: "status", Op: "gte", Value: "a"}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
