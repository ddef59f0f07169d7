package harness

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/tagged"
	"github.com/roach88/occfilter/internal/validate"
)

// Run executes every case of the suite. Case failures are recorded in the
// result; Run itself never fails.
func Run(suite *Suite) *Result {
	result := NewResult()
	opts := []predicate.DecodeOption{predicate.WithMaxDepth(suite.MaxDepth)}

	for _, c := range suite.Cases {
		cr := runCase(c, opts)
		slog.Debug("conformance case", "suite", suite.Name, "case", c.Name, "pass", cr.Pass)
		result.AddCase(cr)
	}
	return result
}

func runCase(c Case, opts []predicate.DecodeOption) CaseResult {
	cr := CaseResult{Name: c.Name, Pass: true}
	fail := func(format string, args ...any) {
		cr.Errors = append(cr.Errors, fmt.Sprintf(format, args...))
		cr.Pass = false
	}

	p, req, err := decodeCase(c, opts)
	var inputErr *caseInputError
	if errors.As(err, &inputErr) {
		fail("%v", err)
		return cr
	}

	if err != nil {
		code, _ := validate.CodeOf(err)
		cr.Code = string(code)
		if c.Expect.Valid {
			fail("expected valid, got %v", err)
		} else if c.Expect.Code != "" && c.Expect.Code != cr.Code {
			fail("expected code %s, got %v", c.Expect.Code, err)
		}
		return cr
	}

	cr.Valid = true
	if !c.Expect.Valid {
		fail("expected rejection with code %q, but input decoded", c.Expect.Code)
	}

	if req != nil {
		cr.Encoded, err = download.Encode(req)
	} else {
		cr.Encoded, err = predicate.Encode(p)
	}
	if err != nil {
		fail("encode: %v", err)
		return cr
	}
	canonical, err := tagged.MarshalCanonical(cr.Encoded)
	if err != nil {
		fail("canonical: %v", err)
		return cr
	}
	if c.Expect.Canonical != "" && c.Expect.Canonical != string(canonical) {
		fail("canonical mismatch\n  expected: %s\n  actual:   %s", c.Expect.Canonical, canonical)
	}

	if req != nil {
		if err := checkRequestRoundTrip(req, canonical, opts); err != nil {
			fail("round trip: %v", err)
		}
		return cr
	}
	if err := checkRoundTrip(p, canonical, opts); err != nil {
		fail("round trip: %v", err)
	}
	for _, msg := range EvaluateAssertions(p, c.Assertions) {
		fail("%s", msg)
	}
	return cr
}

// caseInputError marks a case whose YAML input cannot be converted, as
// opposed to input the decoder rejects.
type caseInputError struct{ err error }

func (e *caseInputError) Error() string { return "bad case input: " + e.err.Error() }

func decodeCase(c Case, opts []predicate.DecodeOption) (predicate.Predicate, *download.Request, error) {
	switch {
	case c.JSON != "":
		p, err := predicate.Unmarshal([]byte(c.JSON), opts...)
		return p, nil, err
	case c.Request != nil:
		v, err := tagged.FromGo(c.Request)
		if err != nil {
			return nil, nil, &caseInputError{err}
		}
		req, err := download.Decode(v, opts...)
		return nil, req, err
	default:
		v, err := tagged.FromGo(c.Predicate)
		if err != nil {
			return nil, nil, &caseInputError{err}
		}
		p, err := predicate.Decode(v, opts...)
		return p, nil, err
	}
}

// checkRoundTrip verifies that canonical bytes decode to an equal tree that
// re-encodes identically and hashes the same.
func checkRoundTrip(p predicate.Predicate, canonical []byte, opts []predicate.DecodeOption) error {
	back, err := predicate.Unmarshal(canonical, opts...)
	if err != nil {
		return fmt.Errorf("decode canonical: %w", err)
	}
	if !predicate.Equal(p, back) {
		return fmt.Errorf("decoded tree differs from original")
	}
	again, err := predicate.Marshal(back)
	if err != nil {
		return err
	}
	if !bytes.Equal(canonical, again) {
		return fmt.Errorf("re-encoding differs:\n  first:  %s\n  second: %s", canonical, again)
	}
	h1, err := predicate.Hash(p)
	if err != nil {
		return err
	}
	h2, err := predicate.Hash(back)
	if err != nil {
		return err
	}
	if h1 != h2 {
		return fmt.Errorf("hash differs: %s != %s", h1, h2)
	}
	return nil
}

func checkRequestRoundTrip(req *download.Request, canonical []byte, opts []predicate.DecodeOption) error {
	back, err := download.Unmarshal(canonical, opts...)
	if err != nil {
		return fmt.Errorf("decode canonical: %w", err)
	}
	again, err := download.Marshal(back)
	if err != nil {
		return err
	}
	if !bytes.Equal(canonical, again) {
		return fmt.Errorf("re-encoding differs:\n  first:  %s\n  second: %s", canonical, again)
	}
	k1, err := req.Key()
	if err != nil {
		return err
	}
	k2, err := back.Key()
	if err != nil {
		return err
	}
	if k1 != k2 {
		return fmt.Errorf("key differs: %s != %s", k1, k2)
	}
	return nil
}
