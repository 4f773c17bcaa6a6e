package model

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
