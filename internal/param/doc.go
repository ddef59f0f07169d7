// Package param is the search parameter registry.
//
// Every predicate leaf references a Parameter: a named field bound to exactly
// one ValueType. The catalog is a fixed set of package-level values built at
// init time and never mutated, so lookups are safe from any goroutine.
//
// Lookups are case and separator insensitive: "event date", "EVENT_DATE",
// "event-date" and "eventDate" all resolve to EventDate. An unknown name is
// reported as not found; callers decide whether that is fatal.
package param
