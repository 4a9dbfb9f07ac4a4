package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
)

// Pinger checks the store connection
type Pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealth godoc
//
//	@Summary		Health (liveness) Check
//	@Description	Check if the HTTP service is alive and responding.
//	@Tags			Common
//	@Produce		plain
//
//	@Success		200	{string}	string	"OK"
//
//	@Router			/health/live [get]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type readinessResponse struct {
	Status string `json:"status" example:"ready"`
	Reason string `json:"reason,omitempty" example:"store unavailable"`
}

// HandleReadiness godoc
//
//	@Summary		Readiness Check
//	@Description	Checks if the service is ready to accept traffic (includes store connectivity)
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	readinessResponse	"status ready"
//	@Failure		503	{object}	readinessResponse	"status not ready"
//	@Router			/health/ready [get]
func HandleReadiness(store Pinger, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.ContextRequestLogger(r.Context()).Warn("store ping failed",
				slog.String("error", err.Error()))

			blog.RespondWithJSONPayload(w, http.StatusServiceUnavailable, readinessResponse{
				Status: "not ready",
				Reason: "store unavailable",
			})
			return
		}

		blog.RespondWithJSONPayload(w, http.StatusOK, readinessResponse{Status: "ready"})
	}
}
