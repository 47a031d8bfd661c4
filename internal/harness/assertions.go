package harness

import (
	"fmt"
	"strings"
)

// AssertionError reports one failed assertion with enough context to
// debug it without re-running the scenario.
type AssertionError struct {
	Type     string   // assertion type for categorization
	Expected string   // human-readable expected outcome
	Actual   string   // human-readable actual outcome
	Lines    []string // full transcript for context
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "\ntranscript:\n")
	for i, line := range e.Lines {
		fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
	}
	return buf.String()
}

// evaluate checks one assertion against the transcript lines.
func evaluate(lines []string, a Assertion) error {
	switch a.Type {
	case AssertOutputContains:
		return assertOutputContains(lines, a)
	case AssertOutputOrder:
		return assertOutputOrder(lines, a)
	case AssertOutputCount:
		return assertOutputCount(lines, a)
	case AssertFinalLine:
		return assertFinalLine(lines, a)
	default:
		// Unknown types are rejected at load time; reaching this is a
		// programming error.
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertOutputContains(lines []string, a Assertion) error {
	for _, line := range lines {
		if strings.Contains(line, a.Line) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("a line containing %q", a.Line),
		Actual:   "no line matched",
		Lines:    lines,
	}
}

// assertOutputOrder checks that each expected entry matches some line,
// in order. Matches don't need to be consecutive.
func assertOutputOrder(lines []string, a Assertion) error {
	pos := 0
	for _, want := range a.Lines {
		found := false
		for ; pos < len(lines); pos++ {
			if strings.Contains(lines[pos], want) {
				found = true
				pos++
				break
			}
		}
		if !found {
			return &AssertionError{
				Type:     AssertOutputOrder,
				Expected: fmt.Sprintf("lines matching %v in order", a.Lines),
				Actual:   fmt.Sprintf("no line matching %q after position %d", want, pos),
				Lines:    lines,
			}
		}
	}
	return nil
}

func assertOutputCount(lines []string, a Assertion) error {
	count := 0
	for _, line := range lines {
		if strings.Contains(line, a.Match) {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertOutputCount,
			Expected: fmt.Sprintf("%d line(s) containing %q", a.Count, a.Match),
			Actual:   fmt.Sprintf("%d line(s)", count),
			Lines:    lines,
		}
	}
	return nil
}

func assertFinalLine(lines []string, a Assertion) error {
	if len(lines) == 0 {
		return &AssertionError{
			Type:     AssertFinalLine,
			Expected: fmt.Sprintf("final line %q", a.Line),
			Actual:   "empty transcript",
			Lines:    lines,
		}
	}
	last := lines[len(lines)-1]
	if last != a.Line {
		return &AssertionError{
			Type:     AssertFinalLine,
			Expected: fmt.Sprintf("final line %q", a.Line),
			Actual:   fmt.Sprintf("final line %q", last),
			Lines:    lines,
		}
	}
	return nil
}
