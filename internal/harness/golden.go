package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/mdakit/mdaseq/internal/mda"
)

// RunWithGolden executes a scenario and compares its generated stream,
// rendered as newline-delimited canonical JSON, against a golden file at
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files serve as the source of truth for expected stream output;
// expectation violations additionally fail the test with their messages.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, f := range result.Failures {
		t.Errorf("%s: %s", scenario.Name, f)
	}

	stream, err := mda.MarshalStreamCanonical(result.Events)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, stream)
	return nil
}
