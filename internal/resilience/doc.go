// Package resilience groups reliability patterns for external calls:
// retry with exponential backoff (retry) and circuit breaking
// (circuitbreaker). The scout agents and the RSS fallback wrap every
// outbound call with both.
package resilience
