package models

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status,omitempty"`
	Remote string `json:"remote,omitempty"`
}

type Token struct {
	Token string `json:"token"`
}
