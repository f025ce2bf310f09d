// Package services defines shared utilities consumed by the lookup pipeline
// and its remote integrations.
//
// Key responsibilities:
//   - Context helpers that stamp request tokens and operation names for
//     logging and stale-result tracking.
//   - Structured error markers plus the Wrap helper. Callers classify with
//     errors.Is; only ErrConfigurationMissing ever reaches the user, via
//     UserMessage.
//
// Subpackages hold clients for secondary remote services (OMDb).
package services
