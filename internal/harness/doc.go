// Package harness runs conformance suites against the predicate codec.
//
// A suite is a YAML file of wire-format inputs and the outcome each must
// produce. The same files can be replayed by any other implementation of
// the wire format, which is what makes them useful as a cross-language
// contract.
//
// # Suite Format
//
//	name: suite_name
//	description: "What this suite covers"
//	max_depth: 64            # optional nesting limit for decoding
//	cases:
//	  - name: country_equals
//	    predicate: { type: equals, key: COUNTRY, value: CR }
//	    expect:
//	      valid: true
//	      canonical: '{"key":"COUNTRY","type":"equals","value":"CR"}'
//	    assertions:
//	      - type: kind
//	        kind: equals
//	  - name: bad_year
//	    json: '{"type":"equals","key":"YEAR","value":"soon"}'
//	    expect:
//	      valid: false
//	      code: MALFORMED_VALUE
//
// Each case supplies exactly one input: predicate (a YAML mapping), json
// (raw wire text, for inputs YAML cannot express such as invalid JSON) or
// request (a download request mapping).
//
// # Checks
//
// For every valid case the harness also checks the round-trip law: the
// canonical bytes decode to a structurally equal value that re-encodes to
// the same bytes and hash.
//
// # Assertion Types
//
//   - kind: the root predicate has the given kind
//   - contains_kind: some node in the tree has the given kind
//   - depth: the tree depth equals depth
//   - parameters: the distinct parameters, in first-seen order
package harness
