package services

import (
	"fmt"
	"strings"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/model/session"
)

const (
	welcomeText = "Welcome to our Food Ordering service! How can we help you today?"
	contactText = "You can reach us at support@yourfoodapp.com or call +91-1234567890."
	helpText    = "Use the buttons to navigate. Select \"Order Now\" to see our menu!"

	browsePromptText = "Please choose items from our menu by clicking 'View items' and submit your cart."
	emptyCartText    = "Your cart is empty. Please pick something from the menu first."
	cartClearedText  = "Your cart has been cleared."

	askNameText    = "Great choice! What name should we put on the order?"
	askAddressText = "Please share your location using the button, or type your delivery address."
	askPaymentText = "How would you like to pay?"
)

// Outcome is the result of advancing a conversation by one event: the replies
// to send back to the customer plus side-effect requests the machine itself
// cannot perform. SubmitOrder asks the caller to turn the session into an
// order; TrackOrder asks it to render the customer's active order status.
type Outcome struct {
	Replies     []chat.Reply
	SubmitOrder bool
	TrackOrder  bool
}

func reply(replies ...chat.Reply) Outcome {
	return Outcome{Replies: replies}
}

// ConversationMachine drives the customer checkout dialog. It is a pure
// function of the session and one inbound event: it mutates only the session
// passed in and never touches storage or the gateway, which keeps every
// transition unit-testable.
//
// Catalog selections arrive pre-resolved as cart lines because pricing them
// requires a catalog lookup the machine deliberately does not have.
type ConversationMachine struct{}

// NewConversationMachine creates a ConversationMachine.
func NewConversationMachine() ConversationMachine {
	return ConversationMachine{}
}

// Advance applies one inbound event to the session and returns the outcome.
// Unrecognized input never changes state; it is answered with the current
// state's canonical prompt.
func (m ConversationMachine) Advance(
	sess *session.Session,
	event chat.InboundEvent,
	resolvedLines []cart.Line,
) (Outcome, error) {
	if err := sess.Validate(); err != nil {
		return Outcome{}, err
	}

	switch event.Kind {
	case chat.EventCatalogOrder:
		return m.applyCatalogOrder(sess, resolvedLines)
	case chat.EventLocation:
		return m.applyLocation(sess, event)
	case chat.EventText, chat.EventButton:
		return m.applyInput(sess, event.Input())
	default:
		return reply(m.prompt(sess)), nil
	}
}

// applyCatalogOrder merges a submitted catalog cart. A catalog payload is
// accepted from any state and lands the dialog in Browsing; collected profile
// fields survive so the customer does not retype them after adding items.
func (m ConversationMachine) applyCatalogOrder(sess *session.Session, lines []cart.Line) (Outcome, error) {
	sess.SetState(session.Browsing)

	if len(lines) == 0 {
		return reply(chat.TextReply(browsePromptText)), nil
	}

	if err := sess.MergeCart(lines...); err != nil {
		return Outcome{}, err
	}

	return reply(m.cartSummary(sess)), nil
}

func (m ConversationMachine) applyLocation(sess *session.Session, event chat.InboundEvent) (Outcome, error) {
	if event.Location == nil {
		return reply(m.prompt(sess)), nil
	}

	if err := sess.SetDropOff(*event.Location, event.LocationName); err != nil {
		return Outcome{}, err
	}

	if sess.State() != session.CollectingAddress {
		return reply(m.prompt(sess)), nil
	}

	sess.SetState(session.CollectingPayment)
	return reply(m.paymentChoices()), nil
}

func (m ConversationMachine) applyInput(sess *session.Session, input string) (Outcome, error) {
	intent := chat.IntentOf(input)

	switch intent {
	case chat.IntentTrack:
		return Outcome{TrackOrder: true}, nil
	case chat.IntentContact:
		return reply(chat.TextReply(contactText)), nil
	case chat.IntentHelp:
		return reply(chat.TextReply(helpText)), nil
	}

	switch sess.State() {
	case session.Initial:
		return m.fromInitial(sess, intent)
	case session.Browsing:
		return m.fromBrowsing(sess, intent)
	case session.CollectingName:
		return m.fromCollectingName(sess, input)
	case session.CollectingAddress:
		return m.fromCollectingAddress(sess, input)
	case session.CollectingPayment:
		return m.fromCollectingPayment(sess, input)
	case session.Confirming:
		return m.fromConfirming(sess, intent)
	default:
		return m.fromInitial(sess, intent)
	}
}

func (m ConversationMachine) fromInitial(sess *session.Session, intent chat.Intent) (Outcome, error) {
	sess.SetState(session.Browsing)

	if intent == chat.IntentOrder {
		return reply(chat.CatalogReply()), nil
	}
	return reply(m.welcomeMenu()), nil
}

func (m ConversationMachine) fromBrowsing(sess *session.Session, intent chat.Intent) (Outcome, error) {
	switch intent {
	case chat.IntentGreeting:
		return reply(m.welcomeMenu()), nil

	case chat.IntentOrder:
		return reply(chat.CatalogReply()), nil

	case chat.IntentClearCart:
		sess.ClearCart()
		return reply(chat.TextReply(cartClearedText), chat.CatalogReply()), nil

	case chat.IntentCheckout:
		if sess.Cart().IsEmpty() {
			return reply(chat.TextReply(emptyCartText), chat.CatalogReply()), nil
		}
		sess.SetState(session.CollectingName)
		return reply(chat.TextReply(askNameText)), nil

	default:
		return reply(chat.TextReply(browsePromptText)), nil
	}
}

func (m ConversationMachine) fromCollectingName(sess *session.Session, input string) (Outcome, error) {
	if err := sess.SetName(input); err != nil {
		return reply(chat.TextReply(askNameText)), nil
	}

	sess.SetState(session.CollectingAddress)
	return reply(chat.TextReply(
		fmt.Sprintf("Thanks, %s! %s", sess.Profile().Name, askAddressText),
	)), nil
}

func (m ConversationMachine) fromCollectingAddress(sess *session.Session, input string) (Outcome, error) {
	if err := sess.SetAddress(input); err != nil {
		return reply(chat.TextReply(askAddressText)), nil
	}

	sess.SetState(session.CollectingPayment)
	return reply(m.paymentChoices()), nil
}

func (m ConversationMachine) fromCollectingPayment(sess *session.Session, input string) (Outcome, error) {
	method, ok := order.ParsePaymentMethod(input)
	if !ok {
		return reply(m.paymentChoices()), nil
	}

	if err := sess.SetPayment(method); err != nil {
		return Outcome{}, err
	}

	sess.SetState(session.Confirming)
	return reply(m.orderSummary(sess)), nil
}

// fromConfirming deliberately leaves the state untouched on confirm: the
// caller resets the session only after the order is durably stored, so a
// storage failure keeps the summary on screen and confirm can be retried.
func (m ConversationMachine) fromConfirming(sess *session.Session, intent chat.Intent) (Outcome, error) {
	switch intent {
	case chat.IntentConfirm:
		return Outcome{SubmitOrder: true}, nil

	case chat.IntentModify:
		sess.SetState(session.Browsing)
		return reply(chat.TextReply("No problem, let's adjust your order."), chat.CatalogReply()), nil

	default:
		return reply(m.orderSummary(sess)), nil
	}
}

// prompt returns the canonical re-prompt for the session's current state.
func (m ConversationMachine) prompt(sess *session.Session) chat.Reply {
	switch sess.State() {
	case session.Browsing:
		return chat.TextReply(browsePromptText)
	case session.CollectingName:
		return chat.TextReply(askNameText)
	case session.CollectingAddress:
		return chat.TextReply(askAddressText)
	case session.CollectingPayment:
		return m.paymentChoices()
	case session.Confirming:
		return m.orderSummary(sess)
	default:
		return m.welcomeMenu()
	}
}

func (m ConversationMachine) welcomeMenu() chat.Reply {
	return chat.ChoiceReply(welcomeText,
		chat.Option{ID: "order_now", Title: "🛍️ Order Now"},
		chat.Option{ID: "track_order", Title: "🛵 Track Order"},
		chat.Option{ID: "contact_us", Title: "📞 Contact Us"},
	)
}

func (m ConversationMachine) paymentChoices() chat.Reply {
	return chat.ChoiceReply(askPaymentText,
		chat.Option{ID: "pay_cash", Title: "💵 Cash on Delivery"},
		chat.Option{ID: "pay_upi", Title: "📱 UPI"},
		chat.Option{ID: "pay_card", Title: "💳 Card"},
	)
}

func (m ConversationMachine) cartSummary(sess *session.Session) chat.Reply {
	lines, total := sess.Cart().Summarize()

	var b strings.Builder
	b.WriteString("🛒 *Your Cart*\n")
	writeCartLines(&b, lines)
	fmt.Fprintf(&b, "\nTotal: %s", total)

	return chat.ChoiceReply(b.String(),
		chat.Option{ID: "checkout", Title: "✅ Checkout"},
		chat.Option{ID: "clear_cart", Title: "🗑️ Clear Cart"},
	)
}

func (m ConversationMachine) orderSummary(sess *session.Session) chat.Reply {
	lines, total := sess.Cart().Summarize()
	profile := sess.Profile()

	var b strings.Builder
	b.WriteString("🧾 *Order Summary*\n")
	writeCartLines(&b, lines)
	fmt.Fprintf(&b, "\nTotal: %s\n\n", total)
	fmt.Fprintf(&b, "Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "Deliver to: %s\n", profile.Address)
	fmt.Fprintf(&b, "Payment: %s\n\n", profile.Payment)
	b.WriteString("Shall we place the order?")

	return chat.ChoiceReply(b.String(),
		chat.Option{ID: "place_order", Title: "✅ Confirm"},
		chat.Option{ID: "modify_order", Title: "✏️ Modify"},
	)
}

func writeCartLines(b *strings.Builder, lines []cart.Line) {
	for _, line := range lines {
		fmt.Fprintf(b, "%s x%d = %s\n", line.Name, line.Quantity, line.Subtotal())
	}
}
