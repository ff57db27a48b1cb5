package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrSessionNotActive  = errors.New("session is not active")
	ErrNoSpeechDetected  = errors.New("no speech detected")
	ErrDeviceUnavailable = errors.New("speech device unavailable")
	ErrGenerationFailed  = errors.New("recipe generation failed")
	ErrStoreUnavailable  = errors.New("recipe store unavailable")
)
