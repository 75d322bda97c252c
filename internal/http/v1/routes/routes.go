package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/hello-cicd/internal/http/v1/greeting"
)

// Register wires all API routes into the provided API router.
func Register(api huma.API) {
	greeting.Register(api)
}
