// Package session holds the ephemeral per-customer conversation state: dialog
// position, the in-progress cart, and the incrementally collected profile.
// Sessions live in process memory only and are never the system of record;
// losing them on restart is acceptable.
package session

import (
	"errors"
	"strings"
	"time"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/pkg/errs"
)

// ErrSessionIsNotConstructed is returned when a Session was not created via
// NewSession.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession")

// Session is one customer's conversation. It is only ever read and mutated
// inside the per-customer serialized handler, so it carries no locking of its
// own.
type Session struct {
	customer kernel.Phone
	state    State
	profile  order.Profile
	cart     cart.Cart
	dropOff  *kernel.Location

	lastActivity time.Time

	isConstructed bool
}

// NewSession creates a fresh session in the Initial state.
func NewSession(customer kernel.Phone) (*Session, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return &Session{
		customer:      customer,
		state:         Initial,
		cart:          cart.NewCart(),
		lastActivity:  time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// Validate ensures the session came from NewSession.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Customer returns the session's owner.
func (s *Session) Customer() kernel.Phone {
	return s.customer
}

// State returns the current dialog state.
func (s *Session) State() State {
	return s.state
}

// Profile returns the checkout fields collected so far.
func (s *Session) Profile() order.Profile {
	return s.profile
}

// Cart returns the in-progress cart value.
func (s *Session) Cart() cart.Cart {
	return s.cart
}

// DropOff returns the customer's shared location, nil when none was shared.
func (s *Session) DropOff() *kernel.Location {
	return s.dropOff
}

// LastActivity returns the time of the most recent event for this session.
func (s *Session) LastActivity() time.Time {
	return s.lastActivity
}

// IsIdle reports whether the session saw no activity for at least ttl.
func (s *Session) IsIdle(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.lastActivity) >= ttl
}

// Touch records activity. Called once per routed event.
func (s *Session) Touch(now time.Time) {
	s.lastActivity = now
}

// SetState moves the dialog to a new state. Transition legality is the
// conversation machine's responsibility; the session only stores the result.
func (s *Session) SetState(state State) {
	s.state = state
}

// MergeCart merges catalog selections into the cart.
func (s *Session) MergeCart(items ...cart.Line) error {
	merged, err := s.cart.Add(items...)
	if err != nil {
		return err
	}
	s.cart = merged
	return nil
}

// ClearCart empties the cart.
func (s *Session) ClearCart() {
	s.cart = s.cart.Clear()
}

// SetName stores the customer's name.
func (s *Session) SetName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.profile.Name = trimmed
	return nil
}

// SetAddress stores a normalized free-text address.
func (s *Session) SetAddress(address string) error {
	trimmed := strings.Join(strings.Fields(address), " ")
	if trimmed == "" {
		return errs.NewValueIsRequiredError("address")
	}
	s.profile.Address = trimmed
	return nil
}

// SetDropOff stores a shared location and derives the address string from its
// label when the customer has not typed one.
func (s *Session) SetDropOff(location kernel.Location, label string) error {
	if err := location.Validate(); err != nil {
		return err
	}

	s.dropOff = &location
	if strings.TrimSpace(label) != "" {
		s.profile.Address = strings.TrimSpace(label)
	} else if s.profile.Address == "" {
		s.profile.Address = location.String()
	}
	return nil
}

// SetPayment stores the chosen payment method.
func (s *Session) SetPayment(method order.PaymentMethod) error {
	if method == order.PaymentUnknown {
		return errs.NewValueIsInvalidError("payment method")
	}
	s.profile.Payment = method
	return nil
}

// Reset clears the cart and profile and returns the dialog to Initial. Used
// after a successful submission, an explicit clear, or a vendor rejection.
func (s *Session) Reset() {
	s.cart = cart.NewCart()
	s.profile = order.Profile{}
	s.dropOff = nil
	s.state = Initial
}
