package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// claves de contexto propias del paquete, no exportadas para que nadie las
// escriba desde afuera
type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxRole
)

// JWTAuth protege el grupo de endpoints de jobs: exige un Bearer token HS256
// firmado con el secreto del servicio y deja userId y role en el contexto
// para que los handlers anoten las corridas con su dueño.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				http.Error(w, "falta el token Bearer en Authorization", http.StatusUnauthorized)
				return
			}

			claims := jwt.MapClaims{}
			if _, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
				}
				return key, nil
			}); err != nil {
				http.Error(w, "token inválido o expirado", http.StatusUnauthorized)
				return
			}

			// sub viaja como número JSON; lo bajamos al userId entero de Mongo
			sub, ok := claims["sub"].(float64)
			if !ok {
				http.Error(w, "token sin sub numérico", http.StatusUnauthorized)
				return
			}
			role, _ := claims["role"].(string)

			ctx := context.WithValue(r.Context(), ctxUserID, int(sub))
			ctx = context.WithValue(ctx, ctxRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	tok := strings.TrimPrefix(h, "Bearer ")
	return tok, tok != ""
}

// AdminOnly restringe el historial de corridas al role admin.
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role, _ := r.Context().Value(ctxRole).(string); role != "admin" {
				http.Error(w, "se requiere rol admin", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext devuelve el userId autenticado, 0 si no hay sesión.
func UserIDFromContext(ctx context.Context) int {
	id, _ := ctx.Value(ctxUserID).(int)
	return id
}
