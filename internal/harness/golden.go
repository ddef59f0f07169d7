package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/occfilter/internal/tagged"
)

// snapshot builds the canonical golden form of a result: the suite name
// and, per case, either the encoding or the rejection code.
func snapshot(name string, result *Result) tagged.Object {
	cases := make(tagged.Array, len(result.Cases))
	for i, c := range result.Cases {
		obj := tagged.Object{
			"name":  tagged.String(c.Name),
			"valid": tagged.Bool(c.Valid),
		}
		if c.Valid {
			obj["encoded"] = c.Encoded
		} else {
			obj["code"] = tagged.String(c.Code)
		}
		cases[i] = obj
	}
	return tagged.Object{
		"suite": tagged.String(name),
		"cases": cases,
	}
}

// RunWithGolden runs a suite, fails t for every failing case and compares
// the outcome against testdata/golden/{suite.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, suite *Suite) error {
	t.Helper()

	result := Run(suite)
	for _, e := range result.Errors {
		t.Error(e)
	}
	return AssertGolden(t, suite.Name, result)
}

// AssertGolden compares an existing result against a golden file without
// re-running the suite.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := tagged.MarshalCanonical(snapshot(name, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
