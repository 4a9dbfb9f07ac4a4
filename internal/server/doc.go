// Package server provides the HTTP server for the blog API.
//
// The server is configured through environment variables
// (see internal/config/config.go for details) and serves posts from any store.Store backend.
//
// Handlers are in internal/server/handlers, middleware in internal/server/middleware.
package server
