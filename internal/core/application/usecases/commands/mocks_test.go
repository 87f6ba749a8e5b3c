package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatorder/internal/core/domain/model/cart"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/model/session"
	"chatorder/internal/core/domain/model/vendor"
	"chatorder/internal/core/ports"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateIfStatus(
	ctx context.Context, aggregate *order.Order, expected order.Status,
) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByNumber(
	ctx context.Context, number kernel.OrderNumber,
) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByCustomer(
	ctx context.Context, customer kernel.Phone,
) ([]*order.Order, error) {
	args := m.Called(ctx, customer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPendingBefore(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockVendorDirectory struct{ mock.Mock }

func (m *MockVendorDirectory) Vendors(ctx context.Context) ([]*vendor.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vendor.Vendor), args.Error(1)
}

func (m *MockVendorDirectory) AvailablePartners(ctx context.Context) ([]*vendor.DeliveryPartner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vendor.DeliveryPartner), args.Error(1)
}

type MockCatalogLookup struct{ mock.Mock }

func (m *MockCatalogLookup) GetByID(ctx context.Context, productID string) (*ports.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Product), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

// sentReply is one captured outbound message.
type sentReply struct {
	to    kernel.Phone
	reply chat.Reply
}

// CapturingDispatcher records outbound messages instead of delivering them.
type CapturingDispatcher struct {
	sent []sentReply
}

func (d *CapturingDispatcher) Send(_ context.Context, to kernel.Phone, reply chat.Reply) {
	d.sent = append(d.sent, sentReply{to: to, reply: reply})
}

func (d *CapturingDispatcher) repliesTo(phone kernel.Phone) []chat.Reply {
	var replies []chat.Reply
	for _, s := range d.sent {
		if s.to.IsEqual(phone) {
			replies = append(replies, s.reply)
		}
	}
	return replies
}

// FakeSessionStore is a map-backed session store for handler tests.
type FakeSessionStore struct {
	sessions map[string]*session.Session
	removed  []kernel.Phone
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{sessions: make(map[string]*session.Session)}
}

func (s *FakeSessionStore) GetOrCreate(customer kernel.Phone) (*session.Session, error) {
	if sess, ok := s.sessions[customer.String()]; ok {
		return sess, nil
	}

	sess, err := session.NewSession(customer)
	if err != nil {
		return nil, err
	}
	s.sessions[customer.String()] = sess
	return sess, nil
}

func (s *FakeSessionStore) Remove(customer kernel.Phone) {
	s.removed = append(s.removed, customer)
	delete(s.sessions, customer.String())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func phoneOf(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func moneyOf(t *testing.T, minorUnits int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(minorUnits)
	require.NoError(t, err)
	return m
}

func locationOf(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func cartOf(t *testing.T) cart.Cart {
	t.Helper()
	filled, err := cart.NewCart().Add(cart.Line{
		ProductID: "veg-burger",
		Name:      "Veg Burger",
		UnitPrice: moneyOf(t, 7000),
		Quantity:  2,
	})
	require.NoError(t, err)
	return filled
}

func profileOf() order.Profile {
	return order.Profile{Name: "Asha", Address: "12 MG Road", Payment: order.PaymentCash}
}

func vendorOf(t *testing.T, name, phone string) *vendor.Vendor {
	t.Helper()
	v, err := vendor.NewVendor(name, phoneOf(t, phone), locationOf(t, 13.0830, 80.2710), true)
	require.NoError(t, err)
	return v
}

func partnerOf(t *testing.T, name, phone string) *vendor.DeliveryPartner {
	t.Helper()
	p, err := vendor.NewDeliveryPartner(name, phoneOf(t, phone), true)
	require.NoError(t, err)
	return p
}

// orderInStatus builds a stored order fixture for the given status with the
// vendor and, from AwaitingPickup on, the delivery partner assigned.
func orderInStatus(
	t *testing.T, status order.Status, customer, vendorPhone, partnerPhone kernel.Phone,
) *order.Order {
	t.Helper()

	lines, total := cartOf(t).Summarize()

	var partner *kernel.Phone
	if status >= order.AwaitingPickup {
		partner = &partnerPhone
	}

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(),
		kernel.NextOrderNumber(),
		customer,
		lines,
		total,
		profileOf(),
		nil,
		status,
		&vendorPhone,
		partner,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return aggregate
}
