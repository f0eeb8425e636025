package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", ValidationError{Field: "tripId", Msg: "is required"})
	if !IsValidation(wrapped) {
		t.Fatalf("expected wrapped validation error to be detected")
	}
	if IsStore(wrapped) || IsNotFound(wrapped) || IsConflict(wrapped) {
		t.Fatalf("validation error matched another predicate")
	}

	store := StoreError{Op: "insert booking", Err: errors.New("connection refused")}
	if !IsStore(fmt.Errorf("outer: %w", store)) {
		t.Fatalf("expected store error to be detected")
	}
	if got := store.Error(); got != "store insert booking: connection refused" {
		t.Fatalf("unexpected store message %q", got)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	single := ValidationError{Field: "totalAmount", Msg: "is required"}
	if d := single.Details(); len(d) != 1 || d[0].Field != "totalAmount" {
		t.Fatalf("unexpected details %+v", d)
	}

	multi := ValidationError{Msg: "invalid payload", Fields: []FieldError{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}}
	if d := multi.Details(); len(d) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(d))
	}

	if d := (ValidationError{Msg: "body"}).Details(); d != nil {
		t.Fatalf("expected nil details, got %+v", d)
	}
}

func TestNotFoundMessage(t *testing.T) {
	if got := (NotFoundError{Resource: "Booking"}).Error(); got != "Booking not found" {
		t.Fatalf("got %q", got)
	}
}

func TestIDHelpers(t *testing.T) {
	id := NewID()
	if _, err := ParseID(id.Hex()); err != nil {
		t.Fatalf("generated id %q is not valid", id.Hex())
	}
	if _, err := ParseID("not-an-id"); err == nil {
		t.Fatalf("expected invalid id to be rejected")
	}

	ids, err := ParseIDs([]string{id.Hex(), " " + id.Hex() + " "})
	if err != nil || len(ids) != 2 || ids[1] != id {
		t.Fatalf("ParseIDs = %v, %v", ids, err)
	}
	if _, err := ParseIDs([]string{id.Hex(), "zz"}); err == nil {
		t.Fatalf("expected malformed id to fail")
	}
}
