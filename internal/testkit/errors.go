package testkit

import (
	"errors"
	"path/filepath"
	"strings"
)

// DiagnosticsSeparator delimits the blocks of a diagnostics message.
const DiagnosticsSeparator = "-----"

// InvalidRunnerConfigurationError reports a Runner that cannot launch a
// build as configured.
type InvalidRunnerConfigurationError struct {
	Message string
}

func (e *InvalidRunnerConfigurationError) Error() string {
	return e.Message
}

// UnexpectedBuildFailureError is returned by Build when the build failed.
type UnexpectedBuildFailureError struct {
	Message string
	Result  *BuildResult
}

func (e *UnexpectedBuildFailureError) Error() string {
	return e.Message
}

// UnexpectedBuildSuccessError is returned by BuildAndFail when the build
// succeeded.
type UnexpectedBuildSuccessError struct {
	Message string
	Result  *BuildResult
}

func (e *UnexpectedBuildSuccessError) Error() string {
	return e.Message
}

// diagnostics renders the captured streams of an execution under headline.
func diagnostics(headline, projectDir string, args []string, res *executionResult) string {
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		abs = projectDir
	}

	var b strings.Builder
	b.WriteString(headline)
	b.WriteString(" in ")
	b.WriteString(abs)
	b.WriteString(" with arguments [")
	b.WriteString(strings.Join(args, ", "))
	b.WriteString("]\n\n")
	b.WriteString("Output:\n")
	b.WriteString(res.stdout)
	b.WriteString("\n" + DiagnosticsSeparator + "\n")
	b.WriteString("Error:\n")
	b.WriteString(res.stderr)
	b.WriteString("\n" + DiagnosticsSeparator)
	if res.err != nil {
		b.WriteString("\nReason:\n")
		b.WriteString(rootCause(res.err).Error())
		b.WriteString("\n" + DiagnosticsSeparator)
	}
	return b.String()
}

// rootCause follows the unwrap chain to its end. For joined errors the walk
// continues into the first one.
func rootCause(err error) error {
	for {
		var next error
		switch e := err.(type) {
		case interface{ Unwrap() []error }:
			if errs := e.Unwrap(); len(errs) > 0 {
				next = errs[0]
			}
		default:
			next = errors.Unwrap(err)
		}
		if next == nil {
			return err
		}
		err = next
	}
}
