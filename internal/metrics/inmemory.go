package metrics

import "sync/atomic"

// InMemory is a Recorder backed by atomic counters.
// Cheap enough to run in production; snapshots feed the /metrics endpoint.
type InMemory struct {
	usersRegistered atomic.Int64
	loginSuccesses  atomic.Int64
	loginFailures   atomic.Int64
	jobsCreated     atomic.Int64
	jobsUpdated     atomic.Int64
	jobsDeleted     atomic.Int64
	filesUploaded   atomic.Int64
	filesRejected   atomic.Int64
}

// NewInMemory returns a Recorder backed by in-process counters.
func NewInMemory() *InMemory { return &InMemory{} }

func (m *InMemory) IncUserRegistered() { m.usersRegistered.Add(1) }
func (m *InMemory) IncLoginSuccess()   { m.loginSuccesses.Add(1) }
func (m *InMemory) IncLoginFailure()   { m.loginFailures.Add(1) }
func (m *InMemory) IncJobCreated()     { m.jobsCreated.Add(1) }
func (m *InMemory) IncJobUpdated()     { m.jobsUpdated.Add(1) }
func (m *InMemory) IncJobDeleted()     { m.jobsDeleted.Add(1) }
func (m *InMemory) IncFileUploaded()   { m.filesUploaded.Add(1) }
func (m *InMemory) IncFileRejected()   { m.filesRejected.Add(1) }

// Snapshot returns the current counter values.
func (m *InMemory) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: m.usersRegistered.Load(),
		LoginSuccesses:  m.loginSuccesses.Load(),
		LoginFailures:   m.loginFailures.Load(),
		JobsCreated:     m.jobsCreated.Load(),
		JobsUpdated:     m.jobsUpdated.Load(),
		JobsDeleted:     m.jobsDeleted.Load(),
		FilesUploaded:   m.filesUploaded.Load(),
		FilesRejected:   m.filesRejected.Load(),
	}
}
