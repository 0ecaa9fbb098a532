// Package core defines the shared domain types for Injaz: project
// classification, the contract record and its funding invariants, the
// dependent record snapshot, and the persistence Store interface.
//
// The package is dependency-light on purpose so that the pure logic
// packages (wizard, finance, aggregate) and the infrastructure packages
// (state, api, backend) can all import it without cycles.
package core
