// Package domain holds DTOs for capture http contracts
package domain

// StartResponse reports a freshly opened capture session
type StartResponse struct {
	SessionID string `json:"session_id" example:"8a6e0804-2bd0-4672-b79d-d97027f9071a"`
	StartedAt string `json:"started_at" example:"2026-08-30T12:00:00Z"`
}

// StateResponse reports whether a session is currently active
type StateResponse struct {
	Active    bool   `json:"active" example:"true"`
	SessionID string `json:"session_id,omitempty"`
}

// StopResponse acknowledges a stop request
type StopResponse struct {
	Stopped bool `json:"stopped"`
}
