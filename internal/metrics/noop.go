package metrics

// Noop is a Recorder that discards all events.
type Noop struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) IncUserRegistered() {}
func (*Noop) IncLoginSuccess()   {}
func (*Noop) IncLoginFailure()   {}
func (*Noop) IncJobCreated()     {}
func (*Noop) IncJobUpdated()     {}
func (*Noop) IncJobDeleted()     {}
func (*Noop) IncFileUploaded()   {}
func (*Noop) IncFileRejected()   {}
