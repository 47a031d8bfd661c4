package harness

import "github.com/google/uuid"

// RunTokenGenerator produces run tokens. Production uses UUIDv7 so
// tokens sort by creation time; tests pin a fixed token for
// deterministic snapshots.
type RunTokenGenerator interface {
	Generate() string
}

// UUIDGenerator generates UUIDv7 run tokens.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a UUIDv7-backed run token generator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string. UUIDv7 generation can fail only
// when the system entropy source does; in that case it falls back to a
// random UUIDv4.
func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
