package rest

// ResponseError is the uniform error body.
type ResponseError struct {
	Message string `json:"error"`
}
