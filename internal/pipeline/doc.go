// Package pipeline fans independent per-point work out to a fixed pool of
// goroutines and hands the results back in input order.
package pipeline
