package api

// ConfigResponse is the client configuration handed to the chat UI.
type ConfigResponse struct {
	GoogleAPIKey string `json:"googleApiKey"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
