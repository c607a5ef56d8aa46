package api

type ErrorResponse struct {
	StatusCode   int               `json:"statusCode"`
	ErrorMessage string            `json:"errorMessage"`
	Details      map[string]string `json:"details,omitempty"`
}

type DefaultResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
