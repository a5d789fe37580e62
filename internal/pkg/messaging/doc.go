// Package messaging publishes domain events to a message broker.
//
// Publishers are broker-agnostic; NATS and Kafka are supported, plus an
// in-memory publisher used when no broker is configured.
package messaging
