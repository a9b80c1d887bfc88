package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "secreto-de-prueba"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestJWTAuthPutsUserInContext(t *testing.T) {
	var gotID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
	})

	token := signToken(t, jwt.MapClaims{
		"sub":  7,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	JWTAuth(testSecret)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("esperaba 200, obtuve %d", rec.Code)
	}
	if gotID != 7 {
		t.Errorf("esperaba userId 7 en el contexto, obtuve %d", gotID)
	}
}

func TestJWTAuthRejectsBadTokens(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("el handler no debe ejecutarse sin token válido")
	})
	mw := JWTAuth(testSecret)(next)

	expired := signToken(t, jwt.MapClaims{
		"sub":  1,
		"role": "user",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"sin header", ""},
		{"esquema equivocado", "Basic abc"},
		{"bearer vacío", "Bearer "},
		{"token basura", "Bearer no-es-un-jwt"},
		{"token vencido", "Bearer " + expired},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/jobs", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: esperaba 401, obtuve %d", tt.name, rec.Code)
		}
	}
}

func TestAdminOnlyBlocksNonAdmins(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	chain := JWTAuth(testSecret)(AdminOnly()(next))

	token := signToken(t, jwt.MapClaims{
		"sub":  1,
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/admin/runs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if called {
		t.Error("un role user no debe pasar AdminOnly")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("esperaba 403, obtuve %d", rec.Code)
	}
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	chain := JWTAuth(testSecret)(AdminOnly()(next))

	token := signToken(t, jwt.MapClaims{
		"sub":  1,
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	req := httptest.NewRequest("GET", "/admin/runs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Errorf("un admin debe pasar (code=%d, called=%v)", rec.Code, called)
	}
}
