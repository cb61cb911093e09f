package script

import (
	"fmt"
	"go/token"

	"github.com/pkg/errors"
)

// Problem is a single line of a script that could not be parsed.
type Problem struct {
	// Position of the offending token.
	Position token.Position

	// Message describes the problem.
	Message string
}

// String returns a human-readable representation of the problem.
func (p *Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Position, p.Message)
}

// Report contains all problems found in a script.
type Report struct {
	// FilePath is the path to the script being parsed.
	FilePath string

	// Problems is a list of all problems found.
	Problems []*Problem
}

// HasProblems returns true if there are any problems.
func (r *Report) HasProblems() bool {
	return len(r.Problems) > 0
}

// AddProblem adds a new problem to the report.
func (r *Report) AddProblem(p *Problem) {
	r.Problems = append(r.Problems, p)
}

// Err returns nil for a clean report and otherwise an error listing the
// first problem and how many follow it.
func (r *Report) Err() error {
	switch len(r.Problems) {
	case 0:
		return nil
	case 1:
		return errors.New(r.Problems[0].String())
	default:
		return errors.Errorf("%s (and %d more problems)", r.Problems[0], len(r.Problems)-1)
	}
}

func newProblem(filePath string, line, column int, format string, args ...any) *Problem {
	return &Problem{
		Position: token.Position{
			Filename: filePath,
			Line:     line,
			Column:   column,
		},
		Message: fmt.Sprintf(format, args...),
	}
}
