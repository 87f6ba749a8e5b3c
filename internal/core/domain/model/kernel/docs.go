// Package kernel provides the core domain primitives shared by the chat
// commerce model.
//
// The package includes:
//   - UUID: unique aggregate identity backed by github.com/google/uuid
//   - Phone: a messaging identifier (the key for every actor in the system)
//   - Money: an amount in minor currency units with exact arithmetic
//   - OrderNumber: a time-derived, externally displayable order identifier
//   - Location: a geographic point used for nearest-vendor matching
//
// All types are immutable value objects. Zero values are invalid (except
// Money, which treats zero as a legitimate amount) and are rejected by
// Validate, so instances must be created through the provided constructors.
package kernel
