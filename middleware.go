package main

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ctxKey string

const adminIDKey ctxKey = "adminID"

// authMiddleware extracts and validates Bearer token and injects the admin
// identity into context. Guards the contact directory management routes.
func (a *App) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(authz, "Bearer ")
		uid, err := parseJWT(a.cfg.JWTSecret, raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), adminIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mustAdminID returns the adminID from context or NilObjectID if missing.
func mustAdminID(r *http.Request) primitive.ObjectID {
	val := r.Context().Value(adminIDKey)
	if val == nil {
		return primitive.NilObjectID
	}
	return val.(primitive.ObjectID)
}
