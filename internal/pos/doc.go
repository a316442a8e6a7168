// Package pos defines the canonical domain model shared by every pipeline
// stage: raw POS line items, deduplicated tickets, reporting periods, KPI
// aggregates, comparison rows, factor decompositions, and occupancy slots.
//
// Entities here are pure values derived from the current input snapshot.
// Nothing in this package touches the filesystem or carries state across
// runs; stages pass these types along and the report emitter consumes them.
package pos
