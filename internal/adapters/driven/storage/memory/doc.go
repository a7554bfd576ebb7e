// Package memory provides in-memory implementations of the driven storage
// ports. They back tests and small single-process deployments; the sqlite
// adapter is the durable implementation.
package memory
