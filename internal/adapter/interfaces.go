// Package adapter holds outbound integrations: the analytics event
// forwarder and the wallet signature verifier. Both talk HTTP through
// resty and degrade gracefully when unconfigured.
package adapter

import "time"

// Event is one analytics record describing a handled request.
type Event struct {
	TraceID   string    `json:"traceId"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
	Wallet    string    `json:"wallet,omitempty"`
	Duration  int64     `json:"durationMs"`
	Timestamp time.Time `json:"timestamp"`
}

// AnalyticsForwarder ships request events to the external collector.
// Forwarding is fire-and-forget: a collector outage must never affect
// request handling.
type AnalyticsForwarder interface {
	Forward(event Event)
}
