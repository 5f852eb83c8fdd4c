package form

import (
	"errors"
	"strings"

	"github.com/nikogura/jobmatcher/pkg/analyzer"
)

// Reduce applies an event to a state and returns the next state, plus the
// side effect the driver must run, if any. It performs no I/O.
func Reduce(s State, e Event) (next State, effect Effect) {
	next = s

	switch ev := e.(type) {
	case SkillsChanged:
		next.Skills = ev.Text

	case DesiredJobsChanged:
		next.DesiredJobs = ev.Text

	case FileSelected:
		if ev.File == nil {
			return next, effect
		}
		err := ValidateFile(*ev.File)
		if err != nil {
			next.Error = err.Error()
			next.Outcome = OutcomeFileRejected
			return next, effect
		}
		selected := *ev.File
		next.File = &selected
		next.Error = ""

	case FileCleared:
		next.File = nil

	case SubmitRequested:
		if s.Loading {
			return next, effect
		}
		err := Validate(s)
		if err != nil {
			next.Error = err.Error()
			next.Outcome = OutcomeValidationFailed
			return next, effect
		}
		next.Loading = true
		next.Error = ""
		next.Result = nil
		next.Outcome = OutcomeNone
		effect = &Submit{Request: buildRequest(s)}

	case SubmissionSucceeded:
		if !s.Loading {
			return next, effect
		}
		rep := ev.Report
		next.Loading = false
		next.Error = ""
		next.Result = &rep
		next.Outcome = OutcomeSucceeded

	case SubmissionFailed:
		if !s.Loading {
			return next, effect
		}
		next.Loading = false
		next.Result = nil
		next.Error = analyzer.Message(ev.Err)
		next.Outcome = outcomeFor(ev.Err)
	}

	return next, effect
}

// buildRequest packages trimmed input; blank fields are left out.
func buildRequest(s State) (req analyzer.Request) {
	req.Skills = strings.TrimSpace(s.Skills)
	req.DesiredJobs = strings.TrimSpace(s.DesiredJobs)

	if s.File != nil {
		req.File = &analyzer.Upload{
			Name:     s.File.Name,
			MIMEType: s.File.MIMEType,
			Data:     s.File.Data,
		}
	}

	return req
}

func outcomeFor(err error) (outcome Outcome) {
	var timeoutErr *analyzer.TimeoutError
	var serverErr *analyzer.ServerError
	var networkErr *analyzer.NetworkError
	var emptyErr *analyzer.EmptyResponseError
	var malformedErr *analyzer.MalformedResponseError

	switch {
	case errors.As(err, &timeoutErr):
		outcome = OutcomeTimedOut
	case errors.As(err, &serverErr):
		outcome = OutcomeServerError
	case errors.As(err, &networkErr):
		outcome = OutcomeNetworkError
	case errors.As(err, &emptyErr):
		outcome = OutcomeEmptyResponse
	case errors.As(err, &malformedErr):
		outcome = OutcomeMalformedResponse
	default:
		outcome = OutcomeFailed
	}

	return outcome
}
