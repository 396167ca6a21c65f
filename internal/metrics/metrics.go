// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	IncUserRegistered()
	IncLoginSuccess()
	IncLoginFailure()

	IncJobCreated()
	IncJobUpdated()
	IncJobDeleted()

	IncFileUploaded()
	IncFileRejected()
}

// Snapshot is a point-in-time view of the in-memory counters.
type Snapshot struct {
	UsersRegistered int64 `json:"users_registered"`
	LoginSuccesses  int64 `json:"login_successes"`
	LoginFailures   int64 `json:"login_failures"`
	JobsCreated     int64 `json:"jobs_created"`
	JobsUpdated     int64 `json:"jobs_updated"`
	JobsDeleted     int64 `json:"jobs_deleted"`
	FilesUploaded   int64 `json:"files_uploaded"`
	FilesRejected   int64 `json:"files_rejected"`
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
