// Package server implements the HTTP server using Echo framework.
//
// Routes: account registration and login, token-authenticated account CRUD,
// session count, health, and metrics. Handlers split by domain:
// handlers_auth.go, handlers_accounts.go, handlers_health.go.
package server
