package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFormHandler_Show(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?token=abc.def", nil)
	rec := httptest.NewRecorder()

	if err := NewFormHandler().Show(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}

	body := rec.Body.String()
	for _, want := range []string{
		`<input id="audience"`,
		`<button id="start"`,
		`<progress id="progress" max="100"`,
		`const token = "abc.def";`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected form to contain %s", want)
		}
	}
}

func TestFormHandler_EscapesToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?token=%22%3C%2Fscript%3E", nil)
	rec := httptest.NewRecorder()

	if err := NewFormHandler().Show(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rec.Body.String(), `"</script>`) {
		t.Fatalf("token was not escaped")
	}
}
