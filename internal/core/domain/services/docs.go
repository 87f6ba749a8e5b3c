// Package services contains stateless domain services: the conversation state
// machine that drives the customer dialog, and the vendor assigner that picks
// the vendor for a newly submitted order. Both mutate only the aggregates
// handed to them and perform no I/O.
package services
