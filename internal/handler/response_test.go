package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/leadstorm/internal/dto"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestSuccess_DefaultsToOKWithoutDialog(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/runs/current", nil), rec)

	if err := Success(c, 0, "run status", dto.RunStatus{State: "collecting", Progress: 10, Active: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	payload := decodeEnvelope(t, rec)
	if payload.Status != "success" || payload.Message != "run status" || payload.Dialog != nil {
		t.Fatalf("unexpected response: %+v", payload)
	}
	data, ok := payload.Data.(map[string]any)
	if !ok || data["state"] != "collecting" {
		t.Fatalf("unexpected data: %+v", payload.Data)
	}
}

func TestError_CarriesErrorDialog(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/runs", nil), rec)

	if err := Error(c, 0, "Enter an audience first!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected default status 500, got %d", rec.Code)
	}

	payload := decodeEnvelope(t, rec)
	if payload.Status != "error" || payload.Message != "Enter an audience first!" {
		t.Fatalf("unexpected response: %+v", payload)
	}
	if payload.Dialog == nil || payload.Dialog.Kind != dto.DialogError || payload.Dialog.Message != payload.Message {
		t.Fatalf("expected error dialog mirroring the message, got %+v", payload.Dialog)
	}
}

func TestDialog_Kinds(t *testing.T) {
	cases := map[string]string{
		dto.DialogWarning: dto.DialogWarning,
		dto.DialogInfo:    dto.DialogInfo,
		"shout":           dto.DialogError,
	}
	for kind, want := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/runs", nil), rec)

		if err := Dialog(c, http.StatusConflict, kind, "busy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if payload := decodeEnvelope(t, rec); payload.Dialog == nil || payload.Dialog.Kind != want {
			t.Fatalf("kind %q: expected dialog kind %q, got %+v", kind, want, payload.Dialog)
		}
	}
}
