// Package kpi computes per-period aggregates from the ticket table: sales,
// customers, tickets, operating days, and the derived per-day and
// per-customer ratios. Division never raises; undefined ratios propagate
// as NaN all the way to the emitter.
package kpi
