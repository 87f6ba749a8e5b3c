package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/ports"
)

const (
	noVendorText       = "We're sorry, we couldn't find a restaurant that delivers to your location at the moment."
	submitFailedText   = "Sorry, we couldn't place your order just now. Please tap Confirm to try again."
	findingPartnerText = "We're currently finding a delivery partner. We'll update you shortly."
	feedbackThanksText = "Thank you for your feedback! We hope to serve you again soon. 🙏"
	noActiveOrdersText = "You have no active orders right now. Say \"hi\" to start a new one!"

	fallbackVendorName = "the restaurant"
)

// buildVendorAlert renders the order for the vendor channel with accept and
// reject buttons. The button ids round-trip through the command parser, and
// the body spells out the typed fallback for vendors on plain phones.
func buildVendorAlert(aggregate *order.Order) chat.Reply {
	num := aggregate.Number().String()

	var items strings.Builder
	for _, line := range aggregate.Items() {
		fmt.Fprintf(&items, "%d x %s\n", line.Quantity, line.Name)
	}

	body := fmt.Sprintf(
		"*New Order Alert: %s*\n\nItems:\n%s\nTotal: %s\n\nReply with \"accept %s\" or \"reject %s\"",
		num, items.String(), aggregate.Total(), num, num,
	)

	return chat.ChoiceReply(body,
		chat.Option{ID: "accept_" + num, Title: "✅ Accept"},
		chat.Option{ID: "reject_" + num, Title: "❌ Reject"},
	)
}

// buildPartnerTask renders the pickup task for the delivery partner channel.
func buildPartnerTask(aggregate *order.Order, vendorName string) chat.Reply {
	num := aggregate.Number().String()
	body := fmt.Sprintf(
		"*New Delivery Task: %s*\n\nPickup from: *%s*\nDeliver to: %s\n\nReply \"pickedup %s\" once you collect the order.",
		num, vendorName, aggregate.Profile().Address, num,
	)

	return chat.ChoiceReply(body,
		chat.Option{ID: "picked_up_" + num, Title: "📦 Picked Up"},
	)
}

func buildOrderPlacedText(vendorName string) string {
	return fmt.Sprintf(
		"Great! We've found a restaurant nearby: *%s*.\n\nWe're just waiting for them to confirm your order. We'll notify you in a moment!",
		vendorName,
	)
}

func buildAcceptedText(vendorName string, number kernel.OrderNumber) string {
	return fmt.Sprintf(
		"✅ Good news! *%s* has accepted your order *%s*.\n\nEstimated preparation time is 15-20 minutes. We're now assigning a delivery partner.",
		vendorName, number,
	)
}

func buildRejectedText(vendorName string, number kernel.OrderNumber) string {
	return fmt.Sprintf(
		"❌ We're sorry, but *%s* is unable to fulfill your order *%s* at the moment. Please try ordering again later.",
		vendorName, number,
	)
}

// buildAdminRejectNoticeText flags a vendor rejection to the admin channel so
// someone can follow up with the customer (refund, alternative vendor).
func buildAdminRejectNoticeText(aggregate *order.Order, vendorName string) string {
	return fmt.Sprintf(
		"🚨 Order %s was rejected by %s. Customer %s may need a manual follow-up.",
		aggregate.Number(), vendorName, aggregate.Customer(),
	)
}

// buildAdminStuckOrderText flags an order stuck in vendor confirmation.
func buildAdminStuckOrderText(aggregate *order.Order) string {
	return fmt.Sprintf(
		"⏰ Order %s (customer %s) has been awaiting vendor confirmation since %s.",
		aggregate.Number(), aggregate.Customer(), aggregate.CreatedAt().Format(time.RFC3339),
	)
}

func buildPartnerAssignedText(partnerName string) string {
	return fmt.Sprintf("🛵 A delivery partner, *%s*, has been assigned to your order!", partnerName)
}

func buildFeedbackRequestText(number kernel.OrderNumber) string {
	return fmt.Sprintf(
		"How was your experience? Please rate us from 1 (Poor) to 5 (Excellent)!\n\nReply \"feedback <1-5> %s\".",
		number,
	)
}

// buildProgressText renders the customer-facing delivery timeline for a
// status. Statuses before pickup get the plain status line since the
// customer already received a richer message for those.
func buildProgressText(status order.Status) string {
	switch status {
	case order.Processing:
		return "✅ Order Confirmed\n✅ Food is being prepared\n✅ Picked up by Delivery Partner\n\nYour order will be on its way shortly!"
	case order.OutForDelivery:
		return "✅ Order Confirmed\n✅ Food is being prepared\n✅ Picked up by Delivery Partner\n_... On the way!_\n\nYour order is on its way! Estimated delivery time is 15 minutes."
	case order.Delivered, order.Completed:
		return "✅ Order Confirmed\n✅ Food is being prepared\n✅ Picked up by Delivery Partner\n✅ Delivered!\n\nWe hope you enjoy your meal! 😊"
	default:
		return fmt.Sprintf("Current status: %s.", friendlyStatus(status))
	}
}

// buildTrackingText renders the customer's active orders for the track
// command.
func buildTrackingText(aggregates []*order.Order) string {
	if len(aggregates) == 0 {
		return noActiveOrdersText
	}

	var b strings.Builder
	b.WriteString("📦 *Your Orders*\n\n")
	for _, aggregate := range aggregates {
		fmt.Fprintf(&b, "*%s* (%s): %s\n", aggregate.Number(), aggregate.Total(), friendlyStatus(aggregate.Status()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func friendlyStatus(status order.Status) string {
	switch status {
	case order.PendingVendorConfirmation:
		return "waiting for the restaurant to confirm"
	case order.VendorAccepted:
		return "confirmed, being prepared"
	case order.AwaitingPickup:
		return "ready, delivery partner on the way to pick it up"
	case order.Processing:
		return "picked up by your delivery partner"
	case order.OutForDelivery:
		return "on its way to you"
	case order.Delivered:
		return "delivered"
	case order.Completed:
		return "completed"
	case order.VendorRejected:
		return "cancelled by the restaurant"
	default:
		return status.String()
	}
}

// vendorNameFor resolves a vendor phone to its display name, falling back to
// a generic label when the directory no longer lists it.
func vendorNameFor(ctx context.Context, directory ports.VendorDirectory, phone *kernel.Phone) string {
	if phone == nil {
		return fallbackVendorName
	}

	vendors, err := directory.Vendors(ctx)
	if err != nil {
		return fallbackVendorName
	}

	for _, v := range vendors {
		if v.Phone().IsEqual(*phone) {
			return v.Name()
		}
	}
	return fallbackVendorName
}
