package form

import (
	"github.com/nikogura/jobmatcher/pkg/analyzer"
	"github.com/nikogura/jobmatcher/pkg/report"
)

// Outcome records how the last submission attempt ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeFileRejected
	OutcomeValidationFailed
	OutcomeSucceeded
	OutcomeTimedOut
	OutcomeServerError
	OutcomeNetworkError
	OutcomeEmptyResponse
	OutcomeMalformedResponse
	OutcomeFailed
)

// String returns the outcome name.
func (o Outcome) String() (name string) {
	names := map[Outcome]string{
		OutcomeNone:              "none",
		OutcomeFileRejected:      "file-rejected",
		OutcomeValidationFailed:  "validation-failed",
		OutcomeSucceeded:         "succeeded",
		OutcomeTimedOut:          "timed-out",
		OutcomeServerError:       "server-error",
		OutcomeNetworkError:      "network-error",
		OutcomeEmptyResponse:     "empty-response",
		OutcomeMalformedResponse: "malformed-response",
		OutcomeFailed:            "failed",
	}
	name = names[o]
	if name == "" {
		name = "unknown"
	}
	return name
}

// State is the whole form. Values are replaced, never mutated in place.
type State struct {
	Skills      string
	DesiredJobs string
	File        *File
	Loading     bool
	Error       string
	Result      *report.Report
	Outcome     Outcome
}

// Event is an input to Reduce.
type Event interface {
	formEvent()
}

// SkillsChanged replaces the skills text.
type SkillsChanged struct {
	Text string
}

// DesiredJobsChanged replaces the desired roles text.
type DesiredJobsChanged struct {
	Text string
}

// FileSelected offers a file for upload. A nil File is ignored.
type FileSelected struct {
	File *File
}

// FileCleared removes the selected file.
type FileCleared struct{}

// SubmitRequested asks for the form to be validated and sent.
type SubmitRequested struct{}

// SubmissionSucceeded delivers the service's report.
type SubmissionSucceeded struct {
	Report report.Report
}

// SubmissionFailed delivers a submission error.
type SubmissionFailed struct {
	Err error
}

func (SkillsChanged) formEvent()       {}
func (DesiredJobsChanged) formEvent()  {}
func (FileSelected) formEvent()        {}
func (FileCleared) formEvent()         {}
func (SubmitRequested) formEvent()     {}
func (SubmissionSucceeded) formEvent() {}
func (SubmissionFailed) formEvent()    {}

// Effect is work the driver must perform after a transition.
type Effect interface {
	formEffect()
}

// Submit asks the driver to send Request to the analysis service.
type Submit struct {
	Request analyzer.Request
}

func (*Submit) formEffect() {}
