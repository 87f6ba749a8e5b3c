package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatorder/internal/core/application/router"
	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
)

type recordedEvent struct {
	customer kernel.Phone
	event    chat.InboundEvent
}

type recordingConversation struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingConversation) Handle(_ context.Context, command commands.AdvanceConversationCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{customer: command.Customer(), event: command.Event()})
	return nil
}

type recordingOperator struct {
	mu       sync.Mutex
	commands []commands.ApplyOperatorActionCommand
}

func (r *recordingOperator) Handle(_ context.Context, command commands.ApplyOperatorActionCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, command)
	return nil
}

type staticRoles map[string]ports.Role

func (s staticRoles) RoleOf(phone kernel.Phone) ports.Role {
	return s[phone.String()]
}

type serverFixture struct {
	server       *Server
	echo         *echo.Echo
	conversation *recordingConversation
	operator     *recordingOperator
}

func newServerFixture(t *testing.T, roles staticRoles) *serverFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	conversation := &recordingConversation{}
	operator := &recordingOperator{}
	inboundRouter := router.NewRouter(roles, conversation, operator, logger)

	server := NewServer(
		"secret-verify-token",
		inboundRouter,
		queries.GetOpenOrdersQueryHandler{},
		queries.GetOrderQueryHandler{},
		logger,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &serverFixture{
		server:       server,
		echo:         e,
		conversation: conversation,
		operator:     operator,
	}
}

func (f *serverFixture) request(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	recorder := httptest.NewRecorder()
	f.echo.ServeHTTP(recorder, request)
	return recorder
}

func webhookEnvelope(message string) string {
	return `{"entry":[{"changes":[{"value":{"messages":[` + message + `]}}]}]}`
}

func Test_Server_VerifyWebhook(t *testing.T) {
	t.Run("should echo challenge for matching token", func(t *testing.T) {
		fixture := newServerFixture(t, staticRoles{})

		recorder := fixture.request(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token=secret-verify-token&hub.challenge=12345", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "12345", recorder.Body.String())
	})

	t.Run("should refuse wrong token", func(t *testing.T) {
		fixture := newServerFixture(t, staticRoles{})

		recorder := fixture.request(http.MethodGet,
			"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", "")

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func Test_Server_ReceiveWebhook(t *testing.T) {
	t.Run("should dispatch text message to conversation", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := webhookEnvelope(`{"from":"919876543210","type":"text","text":{"body":"  hi  "}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, fixture.conversation.events, 1)
		recorded := fixture.conversation.events[0]
		assert.Equal(t, "919876543210", recorded.customer.String())
		assert.Equal(t, chat.EventText, recorded.event.Kind)
		assert.Equal(t, "hi", recorded.event.Text)
	})

	t.Run("should dispatch button reply id", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := webhookEnvelope(`{"from":"919876543210","type":"interactive","interactive":{"button_reply":{"id":"order_now","title":"Order Now"}}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, fixture.conversation.events, 1)
		assert.Equal(t, chat.EventButton, fixture.conversation.events[0].event.Kind)
		assert.Equal(t, "order_now", fixture.conversation.events[0].event.ButtonID)
	})

	t.Run("should dispatch shared location", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := webhookEnvelope(`{"from":"919876543210","type":"location","location":{"latitude":13.0827,"longitude":80.2707,"name":"Anna Nagar"}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, fixture.conversation.events, 1)
		recorded := fixture.conversation.events[0].event
		assert.Equal(t, chat.EventLocation, recorded.Kind)
		require.NotNil(t, recorded.Location)
		assert.InDelta(t, 13.0827, recorded.Location.Lat(), 0.0001)
		assert.Equal(t, "Anna Nagar", recorded.LocationName)
	})

	t.Run("should dispatch catalog order with price hints in minor units", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := webhookEnvelope(`{"from":"919876543210","type":"order","order":{"product_items":[{"product_retailer_id":"veg-burger","quantity":2,"item_price":70}]}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, fixture.conversation.events, 1)
		recorded := fixture.conversation.events[0].event
		assert.Equal(t, chat.EventCatalogOrder, recorded.Kind)
		require.Len(t, recorded.Selections, 1)
		assert.Equal(t, "veg-burger", recorded.Selections[0].ProductID)
		assert.Equal(t, 2, recorded.Selections[0].Quantity)
		assert.Equal(t, int64(7000), recorded.Selections[0].UnitPriceHint.Amount())
	})

	t.Run("should route operator message to operator handler", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{"919900112233": ports.RoleVendor})
		body := webhookEnvelope(`{"from":"919900112233","type":"interactive","interactive":{"button_reply":{"id":"accept_ORD-1717500000000","title":"Accept"}}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, fixture.conversation.events)
		require.Len(t, fixture.operator.commands, 1)
		assert.Equal(t, ports.RoleVendor, fixture.operator.commands[0].Role())
	})

	t.Run("should acknowledge envelopes without messages", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := `{"entry":[{"changes":[{"value":{"statuses":[{"id":"wamid.x","status":"delivered"}]}}]}]}`

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, fixture.conversation.events)
	})

	t.Run("should acknowledge messages with invalid sender", func(t *testing.T) {
		// Arrange
		fixture := newServerFixture(t, staticRoles{})
		body := webhookEnvelope(`{"from":"not-a-phone","type":"text","text":{"body":"hi"}}`)

		// Act
		recorder := fixture.request(http.MethodPost, "/webhook", body)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, fixture.conversation.events)
	})
}

func Test_Server_GetOrder(t *testing.T) {
	t.Run("should reject malformed order number", func(t *testing.T) {
		fixture := newServerFixture(t, staticRoles{})

		recorder := fixture.request(http.MethodGet, "/api/v1/orders/nonsense", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
