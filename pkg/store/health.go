package store

// HealthStore reports storage liveness for the status endpoint.
type HealthStore interface {
	Ping() error
}
