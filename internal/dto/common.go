package dto

// HealthResponse represents the liveness payload
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
