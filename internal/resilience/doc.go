// Package resilience groups the fault-tolerance building blocks used on the
// provider call path: bounded retry (retry) and circuit breaking
// (circuitbreaker). Provider clients compose both with an offline-dataset
// fallback so that upstream failures never escape the client boundary.
package resilience
