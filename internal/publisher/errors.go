package publisher

import "fmt"

// ConfigError means a required credential or id is absent; no remote call was
// attempted.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// ValidationError means the request itself is malformed; no remote call was
// attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// APIError is a non-2xx response from a platform API, carrying the message
// from the error envelope when one was present, else the raw body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError means readiness polling exhausted every attempt while the
// container still reported IN_PROGRESS.
type TimeoutError struct {
	ContainerID string
	Attempts    int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("container %s did not become ready within %d attempts", e.ContainerID, e.Attempts)
}

// ContainerError means the platform reported a terminal ERROR or EXPIRED
// state for a container; it is never retried.
type ContainerError struct {
	ContainerID string
	Status      string
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container %s failed with status: %s", e.ContainerID, e.Status)
}
