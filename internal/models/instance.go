package models

import "time"

// InstanceInfo describes the running HammerOverlay process.
// This corresponds to instance.yaml in the data directory.
type InstanceInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	SessionID string    `yaml:"session_id"`
	AppVer    string    `yaml:"app_version"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewInstanceInfo creates instance info with current values.
func NewInstanceInfo(pid int, sessionID, appVersion string) *InstanceInfo {
	return &InstanceInfo{
		Version:   1,
		PID:       pid,
		SessionID: sessionID,
		AppVer:    appVersion,
		StartedAt: time.Now().UTC(),
	}
}
