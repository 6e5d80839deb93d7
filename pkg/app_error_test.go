package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("NOT_FOUND", "Not found", http.StatusNotFound)
		if e.Error() != "NOT_FOUND: Not found" {
			t.Fatalf("unexpected message %q", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "NOT_FOUND" || body.Message != "Not found" || body.Details != "" {
			t.Fatalf("unexpected body %+v", body)
		}
	})

	t.Run("wrapped cause is not exposed", func(t *testing.T) {
		cause := errors.New("dynamodb timeout")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected unwrap to cause")
		}
		if e.ToHTTPError().Details != "" {
			t.Fatalf("internal causes must not leak into details")
		}
	})

	t.Run("details", func(t *testing.T) {
		base := NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest)
		e := base.WithDetails("title is required")
		if e.ToHTTPError().Details != "title is required" {
			t.Fatalf("unexpected details %+v", e.ToHTTPError())
		}
		if base.ToHTTPError().Details != "" {
			t.Fatalf("WithDetails must not mutate the receiver")
		}
		if e.HTTPStatus != http.StatusBadRequest {
			t.Fatalf("unexpected status %d", e.HTTPStatus)
		}
	})
}
