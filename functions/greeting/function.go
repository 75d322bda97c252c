// Package greeting serves the greeting as an HTTP Cloud Function, for
// deployments that skip the container.
package greeting

import (
	"encoding/json"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
)

// Message matches the payload served by the main API.
const Message = "Hello, CI/CD"

func init() {
	functions.HTTP("Greeting", greetingHandler)
}

// Response is the function response.
type Response struct {
	Message string `json:"message"`
}

func greetingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(Response{Message: Message})
}
