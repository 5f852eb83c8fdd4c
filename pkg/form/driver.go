package form

import (
	"context"
	"sync"

	"github.com/nikogura/jobmatcher/pkg/analyzer"
	"github.com/nikogura/jobmatcher/pkg/report"
)

// Submitter sends a validated request to the analysis service.
type Submitter interface {
	Submit(ctx context.Context, req analyzer.Request) (rep report.Report, err error)
}

// Driver owns a form State and runs the effects Reduce asks for.
type Driver struct {
	mu        sync.Mutex
	state     State
	submitter Submitter
	onChange  func(State)
}

// NewDriver creates a driver with an empty form.
func NewDriver(submitter Submitter) (driver *Driver) {
	driver = &Driver{submitter: submitter}
	return driver
}

// OnChange registers a callback invoked after every transition.
func (d *Driver) OnChange(fn func(State)) {
	d.mu.Lock()
	d.onChange = fn
	d.mu.Unlock()
}

// State returns the current form state.
func (d *Driver) State() (s State) {
	d.mu.Lock()
	s = d.state
	d.mu.Unlock()
	return s
}

// Dispatch applies an event. When it starts a submission, Dispatch blocks
// until the request finishes and returns the resulting state. The lock is
// not held during the request, so a second SubmitRequested arriving
// meanwhile sees Loading and is ignored.
func (d *Driver) Dispatch(ctx context.Context, e Event) (s State) {
	var effect Effect
	s, effect = d.apply(e)

	submit, ok := effect.(*Submit)
	if !ok {
		return s
	}

	rep, err := d.submitter.Submit(ctx, submit.Request)
	if err != nil {
		s, _ = d.apply(SubmissionFailed{Err: err})
		return s
	}

	s, _ = d.apply(SubmissionSucceeded{Report: rep})
	return s
}

func (d *Driver) apply(e Event) (s State, effect Effect) {
	d.mu.Lock()
	s, effect = Reduce(d.state, e)
	d.state = s
	onChange := d.onChange
	d.mu.Unlock()

	if onChange != nil {
		onChange(s)
	}

	return s, effect
}
