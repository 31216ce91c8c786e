package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hmisra/plant-store/internal/utils"
)

const testSecret = "gate-test-secret"

// runGate sends req through TokenAuth in front of a probe handler and
// returns the recorder plus whatever admin_id the probe saw.
func runGate(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured any
	next := func(c echo.Context) error {
		captured = c.Get("admin_id")
		return c.NoContent(http.StatusOK)
	}
	if err := TokenAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return rec, captured
}

func validToken(t *testing.T, adminID uint64) string {
	t.Helper()
	access, err := utils.NewAccessToken(testSecret, adminID, 60)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	return access.Token
}

func TestTokenAuth_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/plant", nil)
	rec, captured := runGate(t, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if captured != nil {
		t.Errorf("handler ran with identity %v, want rejection before handler", captured)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["message"] != "Token is missing" {
		t.Errorf("message = %v, want %q", body["message"], "Token is missing")
	}
}

func TestTokenAuth_CookieToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/plant", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: validToken(t, 7)})
	rec, captured := runGate(t, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body)
	}
	if got, ok := captured.(uint64); !ok || got != 7 {
		t.Errorf("admin_id = %v, want 7", captured)
	}
}

func TestTokenAuth_BearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/plant", nil)
	req.Header.Set("Authorization", "Bearer "+validToken(t, 9))
	rec, captured := runGate(t, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, ok := captured.(uint64); !ok || got != 9 {
		t.Errorf("admin_id = %v, want 9", captured)
	}
}

func TestTokenAuth_BodyToken(t *testing.T) {
	payload := `{"token":"` + validToken(t, 11) + `","other":"field"}`
	req := httptest.NewRequest(http.MethodPost, "/api/plant", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec, captured := runGate(t, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, ok := captured.(uint64); !ok || got != 11 {
		t.Errorf("admin_id = %v, want 11", captured)
	}
}

func TestTokenAuth_BodyRestoredAfterPeek(t *testing.T) {
	payload := `{"token":"` + validToken(t, 3) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/plant", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		b, err := io.ReadAll(c.Request().Body)
		if err != nil {
			t.Fatalf("read body downstream: %v", err)
		}
		if string(b) != payload {
			t.Errorf("downstream body = %q, want %q", b, payload)
		}
		return c.NoContent(http.StatusOK)
	}
	if err := TokenAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestTokenAuth_CookieWinsOverHeader(t *testing.T) {
	// A valid cookie is tried first even when the header carries garbage.
	req := httptest.NewRequest(http.MethodPost, "/api/plant", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: validToken(t, 5)})
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec, captured := runGate(t, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got, ok := captured.(uint64); !ok || got != 5 {
		t.Errorf("admin_id = %v, want 5", captured)
	}
}

func TestTokenAuth_InvalidToken(t *testing.T) {
	for name, token := range map[string]string{
		"garbage": "garbage",
		"expired": func() string {
			access, err := utils.NewAccessToken(testSecret, 2, -1)
			if err != nil {
				t.Fatalf("NewAccessToken: %v", err)
			}
			return access.Token
		}(),
		"wrong secret": func() string {
			access, err := utils.NewAccessToken("another-secret", 2, 60)
			if err != nil {
				t.Fatalf("NewAccessToken: %v", err)
			}
			return access.Token
		}(),
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/plant", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec, captured := runGate(t, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
			if captured != nil {
				t.Errorf("handler ran with identity %v, want rejection", captured)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["message"] != "Token isn't valid" {
				t.Errorf("message = %v, want %q", body["message"], "Token isn't valid")
			}
			if reason, _ := body["error"].(string); strings.Contains(reason, testSecret) {
				t.Errorf("diagnostic leaks the secret: %q", reason)
			}
		})
	}
}
