package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/order"
	"chatorder/internal/core/domain/model/session"
	"chatorder/internal/core/domain/model/vendor"
	"chatorder/internal/core/ports"
	"chatorder/internal/pkg/errs"
)

type conversationFixture struct {
	sessions   *FakeSessionStore
	catalog    *MockCatalogLookup
	repo       *MockOrderRepository
	directory  *MockVendorDirectory
	publisher  *MockPublisher
	dispatcher *CapturingDispatcher
	handler    commands.AdvanceConversationCommandHandler
}

func newConversationFixture(t *testing.T) *conversationFixture {
	t.Helper()

	f := &conversationFixture{
		sessions:   NewFakeSessionStore(),
		catalog:    new(MockCatalogLookup),
		repo:       new(MockOrderRepository),
		directory:  new(MockVendorDirectory),
		publisher:  new(MockPublisher),
		dispatcher: &CapturingDispatcher{},
	}

	submit := commands.NewSubmitOrderCommandHandler(
		f.repo, f.directory, f.publisher, f.dispatcher, testLogger(),
	)
	f.handler = commands.NewAdvanceConversationCommandHandler(
		f.sessions, f.catalog, f.repo, f.dispatcher, submit, testLogger(),
	)
	return f
}

func (f *conversationFixture) advance(t *testing.T, customer, text string) {
	t.Helper()
	f.advanceEvent(t, customer, chat.NewTextEvent(text))
}

func (f *conversationFixture) advanceEvent(t *testing.T, customer string, event chat.InboundEvent) {
	t.Helper()

	cmd, err := commands.NewAdvanceConversationCommand(phoneOf(t, customer), event)
	require.NoError(t, err)
	require.NoError(t, f.handler.Handle(t.Context(), cmd))
}

func catalogSelection(t *testing.T) chat.InboundEvent {
	t.Helper()
	return chat.NewCatalogOrderEvent([]chat.Selection{
		{ProductID: "veg-burger", Quantity: 2, UnitPriceHint: moneyOf(t, 6000)},
	})
}

func TestAdvanceConversationCommandHandler_Handle(t *testing.T) {
	const customer = "919876543210"

	t.Run("should price selections from the catalog", func(t *testing.T) {
		f := newConversationFixture(t)
		f.catalog.On("GetByID", mock.Anything, "veg-burger").
			Return(&ports.Product{ID: "veg-burger", Name: "Veg Burger", Price: moneyOf(t, 7000)}, nil).Once()

		f.advance(t, customer, "hi")
		f.advanceEvent(t, customer, catalogSelection(t))

		replies := f.dispatcher.repliesTo(phoneOf(t, customer))
		require.Len(t, replies, 2)
		assert.Contains(t, replies[1].Body, "Veg Burger x2")
		assert.Contains(t, replies[1].Body, "₹140.00")
	})

	t.Run("should fall back to the price hint when the catalog fails", func(t *testing.T) {
		f := newConversationFixture(t)
		f.catalog.On("GetByID", mock.Anything, "veg-burger").
			Return(nil, errs.NewObjectNotFoundError("productID", "veg-burger")).Once()

		f.advance(t, customer, "hi")
		f.advanceEvent(t, customer, catalogSelection(t))

		replies := f.dispatcher.repliesTo(phoneOf(t, customer))
		require.Len(t, replies, 2)
		assert.Contains(t, replies[1].Body, "Item veg-burger x2")
		assert.Contains(t, replies[1].Body, "₹120.00", "hint price of 60.00 x2")
	})

	t.Run("should submit the order and reset the session on confirm", func(t *testing.T) {
		f := newConversationFixture(t)
		f.catalog.On("GetByID", mock.Anything, "veg-burger").
			Return(&ports.Product{ID: "veg-burger", Name: "Veg Burger", Price: moneyOf(t, 7000)}, nil).Once()
		f.directory.On("Vendors", mock.Anything).
			Return([]*vendor.Vendor{vendorOf(t, "Chennai Corner", "919000000001")}, nil).Once()
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()
		f.publisher.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Once()

		f.advance(t, customer, "hi")
		f.advanceEvent(t, customer, catalogSelection(t))
		f.advance(t, customer, "checkout")
		f.advance(t, customer, "Asha")
		f.advance(t, customer, "12 MG Road")
		f.advance(t, customer, "cash")
		f.advance(t, customer, "confirm")

		sess, err := f.sessions.GetOrCreate(phoneOf(t, customer))
		require.NoError(t, err)
		assert.Equal(t, session.Initial, sess.State())
		assert.True(t, sess.Cart().IsEmpty())
		f.repo.AssertExpectations(t)
	})

	t.Run("should keep the session on the summary when the store fails", func(t *testing.T) {
		f := newConversationFixture(t)
		f.catalog.On("GetByID", mock.Anything, "veg-burger").
			Return(&ports.Product{ID: "veg-burger", Name: "Veg Burger", Price: moneyOf(t, 7000)}, nil).Once()
		f.directory.On("Vendors", mock.Anything).
			Return([]*vendor.Vendor{vendorOf(t, "Chennai Corner", "919000000001")}, nil).Once()
		f.repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).
			Return(errors.New("db down")).Once()

		f.advance(t, customer, "hi")
		f.advanceEvent(t, customer, catalogSelection(t))
		f.advance(t, customer, "checkout")
		f.advance(t, customer, "Asha")
		f.advance(t, customer, "12 MG Road")
		f.advance(t, customer, "cash")

		cmd, err := commands.NewAdvanceConversationCommand(
			phoneOf(t, customer), chat.NewTextEvent("confirm"),
		)
		require.NoError(t, err)
		require.Error(t, f.handler.Handle(t.Context(), cmd))

		sess, err := f.sessions.GetOrCreate(phoneOf(t, customer))
		require.NoError(t, err)
		assert.Equal(t, session.Confirming, sess.State(), "confirm stays retryable")
		assert.False(t, sess.Cart().IsEmpty())

		replies := f.dispatcher.repliesTo(phoneOf(t, customer))
		assert.Contains(t, replies[len(replies)-1].Body, "couldn't place your order")
	})

	t.Run("should reset the session when no vendor can serve the order", func(t *testing.T) {
		f := newConversationFixture(t)
		f.catalog.On("GetByID", mock.Anything, "veg-burger").
			Return(&ports.Product{ID: "veg-burger", Name: "Veg Burger", Price: moneyOf(t, 7000)}, nil).Once()
		f.directory.On("Vendors", mock.Anything).Return([]*vendor.Vendor{}, nil).Once()

		f.advance(t, customer, "hi")
		f.advanceEvent(t, customer, catalogSelection(t))
		f.advance(t, customer, "checkout")
		f.advance(t, customer, "Asha")
		f.advance(t, customer, "12 MG Road")
		f.advance(t, customer, "cash")
		f.advance(t, customer, "confirm")

		sess, err := f.sessions.GetOrCreate(phoneOf(t, customer))
		require.NoError(t, err)
		assert.Equal(t, session.Initial, sess.State())

		replies := f.dispatcher.repliesTo(phoneOf(t, customer))
		assert.Contains(t, replies[len(replies)-1].Body, "couldn't find a restaurant")
	})

	t.Run("should answer a track request with active orders", func(t *testing.T) {
		f := newConversationFixture(t)
		customerPhone := phoneOf(t, customer)
		aggregate := orderInStatus(t, order.OutForDelivery, customerPhone,
			phoneOf(t, "919000000001"), phoneOf(t, "919000000009"))

		f.repo.On("GetActiveByCustomer", mock.Anything, customerPhone).
			Return([]*order.Order{aggregate}, nil).Once()

		f.advance(t, customer, "track")

		replies := f.dispatcher.repliesTo(customerPhone)
		require.Len(t, replies, 1)
		assert.Contains(t, replies[0].Body, aggregate.Number().String())
		assert.Contains(t, replies[0].Body, "on its way")
	})

	t.Run("should answer a track request with no orders", func(t *testing.T) {
		f := newConversationFixture(t)
		f.repo.On("GetActiveByCustomer", mock.Anything, mock.Anything).
			Return([]*order.Order{}, nil).Once()

		f.advance(t, customer, "track")

		replies := f.dispatcher.repliesTo(phoneOf(t, customer))
		require.Len(t, replies, 1)
		assert.Contains(t, replies[0].Body, "no active orders")
	})
}
