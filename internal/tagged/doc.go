// Package tagged provides the loosely typed value model that predicates are
// encoded into and decoded from.
//
// A tagged value is the in-memory form of a JSON document: Null, String,
// Number, Bool, Array and Object. Predicates map to Objects carrying a
// "type" discriminator; the codec in package predicate never touches raw
// bytes, it only walks these values.
//
// Key design constraints:
//   - Numbers keep their literal text so no precision is lost between
//     decoding and re-encoding
//   - Canonical output follows RFC 8785: keys ordered by UTF-16 code units,
//     no HTML escaping, strings written byte for byte and required to be
//     valid UTF-8
//   - This package imports nothing internal
package tagged
