// Package chat defines the typed message vocabulary of the conversation core:
// the inbound event union produced by gateway adapters, the closed set of
// customer intents recognized by the conversation state machine, the operator
// action commands recognized by the order lifecycle, and the outbound reply
// union consumed by the notifier.
//
// Normalizing loose gateway strings into these closed types happens here and
// nowhere else; the state machines only ever see typed inputs.
package chat
