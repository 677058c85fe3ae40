package checks

import (
	"github.com/tfk-discgolf/metrixbot/internal/model"
)

// Problem is a single validation failure found before publishing.
type Problem struct {
	// Checker is the name of the checker that found the problem.
	Checker string

	// Message describes what is wrong, in operator terms.
	Message string
}

// Checker validates one aspect of a run about to publish.
//
// Design decision: We use an interface rather than a list of functions
// because:
//  1. Checkers carry configuration (limits, clocks) as fields
//  2. Names travel with the checker into problem reports
//  3. Tests swap in focused fakes
type Checker interface {
	// Name returns the checker's name for problem reports.
	Name() string

	// Check inspects the run and returns the problems it finds.
	Check(run *model.Run) []Problem
}

// Registry runs an ordered list of checkers.
type Registry struct {
	// checkers is the list of registered checkers, run in order.
	checkers []Checker
}

// NewRegistry creates a Registry with all built-in checkers registered.
func NewRegistry() *Registry {
	r := &Registry{
		checkers: make([]Checker, 0),
	}

	r.Register(NewMessageChecker())
	r.Register(NewRoundURLChecker())
	r.Register(NewScheduleChecker())

	return r
}

// NewEmptyRegistry creates a Registry with no checkers. Callers register
// their own.
func NewEmptyRegistry() *Registry {
	return &Registry{
		checkers: make([]Checker, 0),
	}
}

// Register adds a checker to the list.
func (r *Registry) Register(c Checker) {
	r.checkers = append(r.checkers, c)
}

// RunAll runs every registered checker in registration order and
// returns the deduplicated problems.
func (r *Registry) RunAll(run *model.Run) []Problem {
	problems := make([]Problem, 0)
	for _, c := range r.checkers {
		problems = append(problems, c.Check(run)...)
	}
	return deduplicateProblems(problems)
}

// deduplicateProblems removes repeated problems, keeping first
// occurrence order. Two checkers flagging the same message text about
// the same aspect would otherwise double up the failure report.
func deduplicateProblems(problems []Problem) []Problem {
	seen := make(map[string]bool)
	result := make([]Problem, 0, len(problems))

	for _, p := range problems {
		key := p.Checker + "|" + p.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, p)
	}

	return result
}
