// Package messaging publishes domain events through a broker-agnostic API.
//
// Business code depends on the Publisher interface only; the concrete driver
// (Kafka, NATS or NSQ) is selected from configuration at startup, so the
// broker can be swapped without touching usecase code.
package messaging
