// Package handlers provides the HTTP handlers for the blog API.
//
// posts.go serves the /posts resource. health.go and version.go are the common
// infrastructure endpoints (liveness, readiness, build info).
//
// Handlers are constructed with their dependencies and return an http.HandlerFunc.
// Failures are reported with blog.RespondWithErrorResponse so every error body has the same shape.
package handlers
