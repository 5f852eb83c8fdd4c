package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/jobmatcher/pkg/analyzer"
	"github.com/nikogura/jobmatcher/pkg/report"
)

func pdfFile() (f *File) {
	f = &File{Name: "cv.pdf", Size: 1024, MIMEType: MIMETypePDF, Data: []byte("%PDF")}
	return f
}

func TestReduceTextInput(t *testing.T) {
	s, effect := Reduce(State{}, SkillsChanged{Text: "Go"})
	assert.Nil(t, effect)
	assert.Equal(t, "Go", s.Skills)

	s, effect = Reduce(s, DesiredJobsChanged{Text: "SRE"})
	assert.Nil(t, effect)
	assert.Equal(t, "SRE", s.DesiredJobs)
	assert.Equal(t, "Go", s.Skills)
}

func TestReduceFileSelection(t *testing.T) {
	valid := pdfFile()

	s, _ := Reduce(State{Error: "old"}, FileSelected{File: valid})
	require.NotNil(t, s.File)
	assert.Equal(t, "cv.pdf", s.File.Name)
	assert.Empty(t, s.Error)

	t.Run("nil file ignored", func(t *testing.T) {
		next, effect := Reduce(s, FileSelected{})
		assert.Nil(t, effect)
		assert.Equal(t, s, next)
	})

	t.Run("oversize keeps prior file", func(t *testing.T) {
		big := &File{Name: "big.pdf", Size: MaxFileSize + 1, MIMEType: MIMETypePDF}
		next, _ := Reduce(s, FileSelected{File: big})
		require.NotNil(t, next.File)
		assert.Equal(t, "cv.pdf", next.File.Name)
		assert.Equal(t, MessageFileTooLarge, next.Error)
		assert.Equal(t, OutcomeFileRejected, next.Outcome)
	})

	t.Run("wrong type keeps prior file", func(t *testing.T) {
		zip := &File{Name: "a.zip", Size: 10, MIMEType: "application/zip"}
		next, _ := Reduce(s, FileSelected{File: zip})
		require.NotNil(t, next.File)
		assert.Equal(t, "cv.pdf", next.File.Name)
		assert.Equal(t, MessageUnsupportedType, next.Error)
	})

	t.Run("selection copies the file", func(t *testing.T) {
		f := pdfFile()
		next, _ := Reduce(State{}, FileSelected{File: f})
		f.Name = "changed.pdf"
		assert.Equal(t, "cv.pdf", next.File.Name)
	})

	t.Run("clear", func(t *testing.T) {
		next, _ := Reduce(s, FileCleared{})
		assert.Nil(t, next.File)
	})
}

func TestReduceSubmitValidation(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
	}{
		{name: "nothing", state: State{}, message: MessageNoInput},
		{name: "whitespace skills", state: State{Skills: "   \t"}, message: MessageNoInput},
		{name: "desired jobs only", state: State{DesiredJobs: "SRE"}, message: MessageNoInput},
		{name: "one char", state: State{Skills: " a "}, message: MessageSkillsShort},
		{name: "two chars", state: State{Skills: "Go"}, message: MessageSkillsShort},
		{name: "two chars with file", state: State{Skills: "Go", File: pdfFile()}, message: MessageSkillsShort},
		{name: "two runes", state: State{Skills: "日本"}, message: MessageSkillsShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effect := Reduce(tt.state, SubmitRequested{})
			assert.Nil(t, effect, "no request may be issued")
			assert.False(t, next.Loading)
			assert.Equal(t, tt.message, next.Error)
			assert.Equal(t, OutcomeValidationFailed, next.Outcome)

			var validationErr *ValidationError
			require.ErrorAs(t, Validate(tt.state), &validationErr)
		})
	}
}

func TestReduceSubmitStartsRequest(t *testing.T) {
	prior := report.Report{}
	s := State{
		Skills:      "  Go, SQL  ",
		DesiredJobs: "   ",
		File:        pdfFile(),
		Error:       "stale",
		Result:      &prior,
	}

	next, effect := Reduce(s, SubmitRequested{})
	require.IsType(t, &Submit{}, effect)
	assert.True(t, next.Loading)
	assert.Empty(t, next.Error)
	assert.Nil(t, next.Result)

	req := effect.(*Submit).Request
	assert.Equal(t, "Go, SQL", req.Skills)
	assert.Empty(t, req.DesiredJobs)
	require.NotNil(t, req.File)
	assert.Equal(t, "cv.pdf", req.File.Name)
	assert.Equal(t, MIMETypePDF, req.File.MIMEType)

	t.Run("file only", func(t *testing.T) {
		_, fileEffect := Reduce(State{File: pdfFile()}, SubmitRequested{})
		require.IsType(t, &Submit{}, fileEffect)
		assert.Empty(t, fileEffect.(*Submit).Request.Skills)
	})

	t.Run("second submit while loading is ignored", func(t *testing.T) {
		again, againEffect := Reduce(next, SubmitRequested{})
		assert.Nil(t, againEffect)
		assert.Equal(t, next, again)
	})
}

func TestReduceSubmissionOutcomes(t *testing.T) {
	loading := State{Skills: "Go, SQL", Loading: true}

	tests := []struct {
		name    string
		err     error
		message string
		outcome Outcome
	}{
		{name: "timeout", err: &analyzer.TimeoutError{Err: context.DeadlineExceeded}, message: "Request timed out.", outcome: OutcomeTimedOut},
		{name: "server", err: &analyzer.ServerError{StatusCode: 400, Status: "Bad Request", Message: "Bad file"}, message: "Server error: Bad file", outcome: OutcomeServerError},
		{name: "network", err: &analyzer.NetworkError{Err: context.Canceled}, message: "Network error. Please try again.", outcome: OutcomeNetworkError},
		{name: "empty", err: &analyzer.EmptyResponseError{StatusCode: 200}, message: "No response data.", outcome: OutcomeEmptyResponse},
		{name: "malformed", err: &analyzer.MalformedResponseError{Err: context.Canceled}, message: "Malformed response data.", outcome: OutcomeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effect := Reduce(loading, SubmissionFailed{Err: tt.err})
			assert.Nil(t, effect)
			assert.False(t, next.Loading)
			assert.Nil(t, next.Result)
			assert.Equal(t, tt.message, next.Error)
			assert.Equal(t, tt.outcome, next.Outcome)
		})
	}

	t.Run("success", func(t *testing.T) {
		rep, err := report.Parse([]byte(`{"effort_level": "Low"}`))
		require.NoError(t, err)

		next, _ := Reduce(loading, SubmissionSucceeded{Report: rep})
		assert.False(t, next.Loading)
		assert.Empty(t, next.Error)
		require.NotNil(t, next.Result)
		assert.Equal(t, "Low", next.Result.EffortLevel.Str)
		assert.Equal(t, OutcomeSucceeded, next.Outcome)
	})

	t.Run("stale outcome ignored when idle", func(t *testing.T) {
		idle := State{Skills: "Go, SQL"}
		next, _ := Reduce(idle, SubmissionFailed{Err: &analyzer.NetworkError{}})
		assert.Equal(t, idle, next)
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "timed-out", OutcomeTimedOut.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}
