package testutil

// FixedRunTokenGenerator returns the same run token every time.
//
// This enables deterministic test execution and golden snapshot
// comparison: the same scenario with the same FixedRunTokenGenerator
// produces byte-identical transcripts.
//
// Thread-safety: FixedRunTokenGenerator is stateless after construction
// and safe for concurrent use.
type FixedRunTokenGenerator struct {
	token string
}

// NewFixedRunTokenGenerator creates a fixed run token generator.
//
// The token is typically set in the scenario YAML:
//
//	run_token: "run-00000001"
//
// If token is empty, Generate() returns "run-default".
func NewFixedRunTokenGenerator(token string) *FixedRunTokenGenerator {
	if token == "" {
		token = "run-default"
	}
	return &FixedRunTokenGenerator{token: token}
}

// Generate returns the fixed run token.
//
// Implements harness.RunTokenGenerator.
func (g *FixedRunTokenGenerator) Generate() string {
	return g.token
}
