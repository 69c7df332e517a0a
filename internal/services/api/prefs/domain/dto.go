// Package domain holds DTOs for display preference contracts
package domain

// Theme values accepted by the preference endpoints
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// PrefInput is the payload for storing a display preference
type PrefInput struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system" example:"dark"`
}

// Pref is the stored display preference for a device
type Pref struct {
	DeviceID  string `json:"device_id"`
	Theme     string `json:"theme" example:"system"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
