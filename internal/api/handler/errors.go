package handler

// ErrorResponse is the error envelope, shaped like the marketplace API's own
// so the browser treats local and upstream failures alike.
type ErrorResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
}
