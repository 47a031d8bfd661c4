package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"golang.org/x/text/unicode/norm"
)

// snapshot renders a result as the text stored in golden files. The
// whole snapshot is NFC-normalized so byte comparison is stable across
// platforms that produce differently composed Unicode.
func snapshot(r *Result) []byte {
	s := fmt.Sprintf("scenario: %s\nrun_token: %s\n---\n%s", r.ScenarioName, r.RunToken, r.Transcript)
	return []byte(norm.NFC.String(s))
}

// RunWithGolden executes a scenario and compares its transcript against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The returned error covers execution failures; a snapshot mismatch
// fails t via goldie instead.
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), s)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, snapshot(result))
	return result, nil
}
