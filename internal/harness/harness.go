package harness

import (
	"context"
	"fmt"

	"github.com/suryaravikumar-space/loopkit/internal/demos"
	"github.com/suryaravikumar-space/loopkit/internal/loop"
	"github.com/suryaravikumar-space/loopkit/internal/testutil"
)

// DefaultRunToken is stamped on scenario results that don't pin a token
// of their own. Keeping it constant keeps golden snapshots stable.
// testutil.FixedRunTokenGenerator falls back to the same value.
const DefaultRunToken = "run-default"

// Check pairs an assertion with its evaluation outcome.
type Check struct {
	Assertion Assertion
	Err       error // nil on pass
}

// Result is one scenario execution with its transcript and checks.
type Result struct {
	ScenarioName string
	RunToken     string
	Lines        []string
	Transcript   string
	Checks       []Check
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if c.Err != nil {
			return false
		}
	}
	return true
}

// Failures returns the errors of the failed checks.
func (r *Result) Failures() []error {
	var errs []error
	for _, c := range r.Checks {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return errs
}

// Run executes the scenario's demo on a fresh virtual-clock loop and
// evaluates its assertions. The returned error covers execution
// problems only; assertion failures land in Result.Checks.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	demo, ok := demos.Find(s.Demo)
	if !ok {
		return nil, fmt.Errorf("scenario %s: unknown demo %q", s.Name, s.Demo)
	}

	transcript, err := demos.Execute(ctx, demo, loop.New())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	// Scenario runs pin their token so snapshots stay byte-identical.
	var gen RunTokenGenerator = testutil.NewFixedRunTokenGenerator(s.RunToken)

	result := &Result{
		ScenarioName: s.Name,
		RunToken:     gen.Generate(),
		Lines:        transcript.Lines(),
		Transcript:   transcript.String(),
	}
	for _, a := range s.Assertions {
		result.Checks = append(result.Checks, Check{Assertion: a, Err: evaluate(result.Lines, a)})
	}
	return result, nil
}
