package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every shipped scenario must pass against the current catalog.
func TestRun_ShippedScenariosPass(t *testing.T) {
	scenarios, err := LoadScenarioDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			result, err := Run(context.Background(), s)
			require.NoError(t, err)
			for _, c := range result.Checks {
				assert.NoError(t, c.Err, "assertion %s", c.Assertion.Type)
			}
			assert.True(t, result.Passed())
			assert.Empty(t, result.Failures())
		})
	}
}

func TestRun_EveryDemoHasAScenario(t *testing.T) {
	scenarios, err := LoadScenarioDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	covered := make(map[string]bool)
	for _, s := range scenarios {
		covered[s.Demo] = true
	}
	for _, name := range []string{
		"closure-counter", "tasks-vs-microtasks", "timers", "deferred",
		"combinators", "debounce", "throttle", "emitter", "memoize",
		"lru-cache", "serial-queue", "async-pool", "mini-store",
		"selector", "curry",
	} {
		assert.True(t, covered[name], "demo %s has no scenario", name)
	}
}

func TestRun_FailedAssertionLandsInChecks(t *testing.T) {
	s := &Scenario{
		Name:        "doomed",
		Description: "an assertion that cannot hold",
		Demo:        "curry",
		Assertions: []Assertion{
			{Type: AssertOutputContains, Line: "this text never appears"},
			{Type: AssertFinalLine, Line: "takeaway: compose applies right to left, pipe left to right"},
		},
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)

	assert.False(t, result.Passed())
	require.Len(t, result.Failures(), 1)
	assert.Error(t, result.Checks[0].Err)
	assert.NoError(t, result.Checks[1].Err)
}

func TestRun_PinnedRunTokenStamped(t *testing.T) {
	s := &Scenario{
		Name:        "token_pinned",
		Description: "the scenario's run token is stamped on the result",
		Demo:        "closure-counter",
		RunToken:    "run-00000099",
		Assertions:  []Assertion{{Type: AssertOutputContains, Line: "counter a: 1"}},
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "run-00000099", result.RunToken)
}

func TestRun_DefaultRunToken(t *testing.T) {
	s := &Scenario{
		Name:        "token_default",
		Description: "missing run_token falls back to the default",
		Demo:        "closure-counter",
		Assertions:  []Assertion{{Type: AssertOutputContains, Line: "counter a: 1"}},
	}
	result, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, DefaultRunToken, result.RunToken)
}

func TestRun_UnknownDemoErrors(t *testing.T) {
	s := &Scenario{Name: "x", Description: "d", Demo: "missing-demo",
		Assertions: []Assertion{{Type: AssertOutputContains, Line: "x"}}}
	_, err := Run(context.Background(), s)
	assert.Error(t, err)
}

func TestRun_TranscriptIsDeterministic(t *testing.T) {
	s := &Scenario{
		Name:        "deterministic",
		Description: "two runs of a timing-heavy demo match byte for byte",
		Demo:        "combinators",
		Assertions:  []Assertion{{Type: AssertOutputContains, Line: "race won"}},
	}
	first, err := Run(context.Background(), s)
	require.NoError(t, err)
	second, err := Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, first.Transcript, second.Transcript)
}
