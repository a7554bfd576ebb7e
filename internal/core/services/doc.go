// Package services implements the engine's driving ports: the quality
// gate, the relationship resolver, the navigator and the intelligence
// provider. Services hold no state beyond their injected ports and
// configuration; the intelligence cache is the only shared mutable state
// and lives behind the driven IntelCache port.
package services
