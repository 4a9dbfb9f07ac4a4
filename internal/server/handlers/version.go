package handlers

import (
	"net/http"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/version"
)

const serviceName = "blog-server"

type VersionResponse struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildDate string `json:"buildDate" example:"2024-01-28T10:00:00Z"`
	GitCommit string `json:"gitCommit" example:"3f2c1a9"`
	Service   string `json:"service" example:"blog-server"`
}

// HandleVersion godoc
//
//	@Summary		Get version information
//	@Description	Returns the version and build information for the service
//	@Tags			Common
//	@Produce		json
//	@Success		200	{object}	VersionResponse	"Version information"
//	@Router			/version [get]
func HandleVersion(info version.Info) http.HandlerFunc {
	response := VersionResponse{
		Version:   info.Version,
		BuildDate: info.BuildDate,
		GitCommit: info.GitCommit,
		Service:   serviceName,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		blog.RespondWithJSONPayload(w, http.StatusOK, response)
	}
}
