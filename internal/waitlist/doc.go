// Package waitlist implements the customer self-service flow for one vendor:
// finding an existing entry, joining, refreshing and leaving, plus the cached
// queue snapshot those actions render against.
//
// Controller is safe for concurrent use. Every lookup and roster fetch carries
// a sequence number; a response is applied only if no newer request of the
// same kind was issued meanwhile. A completed join or leave also supersedes
// lookups still in flight.
package waitlist
