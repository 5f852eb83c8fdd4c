package form

import (
	"strings"
	"unicode/utf8"
)

// MinSkillsLength is the shortest trimmed skills text accepted.
const MinSkillsLength = 3

// Validation messages.
const (
	MessageNoInput     = "Provide skills or upload a CV/resume."
	MessageSkillsShort = "Minimum 3 characters required for skills."
)

// ValidationError stops a submission before any request is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() (msg string) {
	msg = e.Message
	return msg
}

// Validate checks that the form has enough input to submit.
func Validate(s State) (err error) {
	skills := strings.TrimSpace(s.Skills)

	if skills == "" && s.File == nil {
		err = &ValidationError{Message: MessageNoInput}
		return err
	}

	if skills != "" && utf8.RuneCountInString(skills) < MinSkillsLength {
		err = &ValidationError{Message: MessageSkillsShort}
		return err
	}

	return err
}
