// Package order contains the order aggregate: the durable record of a
// submitted purchase and its fulfillment status.
//
// The aggregate enforces the lifecycle state machine
//
//	PendingVendorConfirmation ──> VendorAccepted ──> AwaitingPickup ──> Processing
//	        │                           │                 │
//	        └──> VendorRejected         └────── PickUp ───┘
//
//	Processing ──> OutForDelivery ──> Delivered ──> Completed
//
// together with the invariants that items and total are frozen once the order
// leaves PendingVendorConfirmation, and that a rating can only be attached in
// the Delivered state.
package order
