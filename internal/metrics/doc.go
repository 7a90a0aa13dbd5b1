// Package metrics derives portfolio-value and return metrics from a
// sorted sequence of daily profit/loss entries.
//
// Every function in this package is a pure transform: the same input
// always yields the same output and nothing is retained between calls.
// The derived series is always computed over the full history; range
// filtering and summarizing operate on that series afterwards, so
// cumulative figures never depend on the selected range.
package metrics
