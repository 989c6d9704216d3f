package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"sheetboard/domain/core"
)

func TestHTTPStatusByFamily(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("read: %w", core.ErrEmptySheet), http.StatusBadRequest, CodeValidationError},
		{core.ErrUnsupportedFile, http.StatusBadRequest, CodeValidationError},
		{core.ErrClassifierUnavailable, http.StatusServiceUnavailable, CodeClassifierUnavailable},
		{fmt.Errorf("call: %w", core.ErrClassifierRateLimited), http.StatusTooManyRequests, CodeClassifierRateLimited},
		{core.ErrClassifierBadOutput, http.StatusBadGateway, CodeClassifierBadOutput},
		{core.ErrClassifierTransport, http.StatusBadGateway, CodeClassifierTransport},
		{core.NewNotFoundError("board", "b1"), http.StatusNotFound, CodeNotFound},
		{core.NewPersistenceError("board", stderrors.New("down")), http.StatusInternalServerError, CodeDatabaseError},
		{stderrors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.status {
			t.Errorf("HTTPStatus(%v) = %d, expected %d", tt.err, got, tt.status)
		}
		if got := GetCode(tt.err); got != tt.code {
			t.Errorf("GetCode(%v) = %s, expected %s", tt.err, got, tt.code)
		}
	}
}

func TestWrapKeepsCodeAndCause(t *testing.T) {
	base := ConfigInvalid("PORT is invalid")
	wrapped := Wrap(base, "failed to load server configuration")

	if GetCode(wrapped) != CodeConfigInvalid {
		t.Errorf("Expected code %s, got %s", CodeConfigInvalid, GetCode(wrapped))
	}
	if !stderrors.Is(wrapped, base) {
		t.Error("Expected wrapped error to unwrap to its cause")
	}
	if Wrap(nil, "nothing") != nil {
		t.Error("Expected Wrap(nil) to be nil")
	}

	domain := Wrapf(core.ErrNoHeaders, "sheet %s", "Sheet1")
	if !stderrors.Is(domain, core.ErrNoHeaders) {
		t.Error("Expected domain sentinel to survive wrapping")
	}
	if GetCode(domain) != CodeValidationError {
		t.Errorf("Expected validation code, got %s", GetCode(domain))
	}
}
