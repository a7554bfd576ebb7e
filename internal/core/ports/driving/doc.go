// Package driving defines the interfaces the engine offers to callers.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The page-rendering application and the editorial publish workflow
// consume these; the services package implements them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or service package
package driving
