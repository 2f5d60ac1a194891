package api

import (
	"net/http"
	"testing"

	"github.com/steinfletcher/apitest"
)

func TestWithCORS(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := WithCORS(backend, "http://localhost:3000")

	apitest.New().
		Handler(handler).
		Method(http.MethodOptions).
		URL("/api/login").
		Header("Origin", "http://localhost:3000").
		Expect(t).
		Status(http.StatusNoContent).
		Header("Access-Control-Allow-Origin", "http://localhost:3000").
		Header("Access-Control-Allow-Credentials", "true").
		Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE").
		End()

	apitest.New().
		Handler(handler).
		Get("/api/session").
		Header("Origin", "http://localhost:3000").
		Expect(t).
		Status(http.StatusOK).
		Header("Access-Control-Allow-Origin", "http://localhost:3000").
		End()

	// unknown origins get no CORS grants and no preflight short-circuit
	apitest.New().
		Handler(handler).
		Get("/api/session").
		Header("Origin", "http://evil.example").
		Expect(t).
		Status(http.StatusOK).
		HeaderNotPresent("Access-Control-Allow-Origin").
		End()
}
