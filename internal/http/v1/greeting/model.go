package greeting

// Message is the fixed greeting served at the API root.
const Message = "Hello, CI/CD"

// Data models the response payload for the greeting endpoint.
type Data struct {
	Message string `json:"message" doc:"Greeting message" example:"Hello, CI/CD"`
}

// GetOutput is the response wrapper for the greeting endpoint.
type GetOutput struct {
	Body Data
}
