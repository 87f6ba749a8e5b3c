// Package http exposes the inbound surface: the WhatsApp webhook pair and a
// small read-only admin API over the order store.
package http

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"chatorder/internal/core/application/router"
	"chatorder/internal/core/application/usecases/queries"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/pkg/errs"
)

// Server coordinates between HTTP handlers, the inbound router and the
// query handlers.
type Server struct {
	verifyToken string
	router      *router.Router

	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler
	getOrderHandler      queries.GetOrderQueryHandler

	logger *slog.Logger
}

// NewServer creates the HTTP server.
func NewServer(
	verifyToken string,
	inboundRouter *router.Router,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		verifyToken:          verifyToken,
		router:               inboundRouter,
		getOpenOrdersHandler: getOpenOrdersHandler,
		getOrderHandler:      getOrderHandler,
		logger:               logger.With("component", "http"),
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/webhook", s.VerifyWebhook)
	e.POST("/webhook", s.ReceiveWebhook)
	e.GET("/api/v1/orders", s.GetOrders)
	e.GET("/api/v1/orders/:number", s.GetOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// VerifyWebhook handles GET /webhook, the Cloud API subscription handshake.
// The challenge is echoed back only when the verify token matches.
func (s *Server) VerifyWebhook(ctx echo.Context) error {
	mode := ctx.QueryParam("hub.mode")
	token := ctx.QueryParam("hub.verify_token")
	challenge := ctx.QueryParam("hub.challenge")

	if mode == "subscribe" && token == s.verifyToken {
		s.logger.Info("webhook verified")
		return ctx.String(http.StatusOK, challenge)
	}

	return ctx.NoContent(http.StatusForbidden)
}

// webhookPayload mirrors the Cloud API webhook envelope down to the first
// message. Everything else in the envelope is ignored.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Interactive *struct {
		ButtonReply *struct {
			ID string `json:"id"`
		} `json:"button_reply"`
		ListReply *struct {
			ID string `json:"id"`
		} `json:"list_reply"`
	} `json:"interactive"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
	} `json:"location"`
	Order *struct {
		ProductItems []struct {
			ProductRetailerID string  `json:"product_retailer_id"`
			Quantity          int     `json:"quantity"`
			ItemPrice         float64 `json:"item_price"`
		} `json:"product_items"`
	} `json:"order"`
}

// ReceiveWebhook handles POST /webhook. Delivery notifications and other
// envelopes without a message are acknowledged and dropped. Processing
// failures are logged but still acknowledged so the gateway does not
// redeliver the event out of order.
func (s *Server) ReceiveWebhook(ctx echo.Context) error {
	var payload webhookPayload
	if err := ctx.Bind(&payload); err != nil {
		s.logger.Warn("malformed webhook payload", "error", err)
		return ctx.NoContent(http.StatusOK)
	}

	message, ok := firstMessage(payload)
	if !ok {
		return ctx.NoContent(http.StatusOK)
	}

	sender, err := kernel.NewPhone(message.From)
	if err != nil {
		s.logger.Warn("webhook message without valid sender", "error", err)
		return ctx.NoContent(http.StatusOK)
	}

	event := toEvent(message)
	if err := s.router.HandleInbound(ctx.Request().Context(), sender, event); err != nil {
		s.logger.Error("inbound event failed", "sender", sender.String(), "error", err)
	}

	return ctx.NoContent(http.StatusOK)
}

func firstMessage(payload webhookPayload) (inboundMessage, bool) {
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if len(change.Value.Messages) > 0 {
				return change.Value.Messages[0], true
			}
		}
	}
	return inboundMessage{}, false
}

func toEvent(message inboundMessage) chat.InboundEvent {
	switch message.Type {
	case "text":
		if message.Text == nil {
			return chat.InboundEvent{}
		}
		return chat.NewTextEvent(strings.TrimSpace(message.Text.Body))

	case "interactive":
		if message.Interactive == nil {
			return chat.InboundEvent{}
		}
		if message.Interactive.ButtonReply != nil {
			return chat.NewButtonEvent(message.Interactive.ButtonReply.ID)
		}
		if message.Interactive.ListReply != nil {
			return chat.NewButtonEvent(message.Interactive.ListReply.ID)
		}
		return chat.InboundEvent{}

	case "location":
		if message.Location == nil {
			return chat.InboundEvent{}
		}
		location, err := kernel.NewLocation(message.Location.Latitude, message.Location.Longitude)
		if err != nil {
			return chat.InboundEvent{}
		}
		return chat.NewLocationEvent(location, message.Location.Name)

	case "order":
		if message.Order == nil {
			return chat.InboundEvent{}
		}
		selections := make([]chat.Selection, 0, len(message.Order.ProductItems))
		for _, item := range message.Order.ProductItems {
			hint, err := kernel.NewMoney(int64(math.Round(item.ItemPrice * 100)))
			if err != nil {
				continue
			}
			selections = append(selections, chat.Selection{
				ProductID:     item.ProductRetailerID,
				Quantity:      item.Quantity,
				UnitPriceHint: hint,
			})
		}
		return chat.NewCatalogOrderEvent(selections)

	default:
		return chat.InboundEvent{}
	}
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderSummaryResponse struct {
	Number    string    `json:"number"`
	Customer  string    `json:"customer"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

type orderDetailResponse struct {
	Number    string    `json:"number"`
	Customer  string    `json:"customer"`
	Status    string    `json:"status"`
	Total     string    `json:"total"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Payment   string    `json:"payment"`
	Vendor    *string   `json:"vendor,omitempty"`
	Partner   *string   `json:"partner,omitempty"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// GetOrders handles GET /api/v1/orders - lists orders still in flight.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, item := range orders {
		response[i] = orderSummaryResponse{
			Number:    item.Number.String(),
			Customer:  item.Customer.String(),
			Status:    item.Status.String(),
			Total:     item.Total.String(),
			CreatedAt: item.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:number - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	number, err := kernel.OrderNumberFromString(ctx.Param("number"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderQuery(number)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number: " + err.Error(),
		})
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if errors.As(err, &notFound) {
			return ctx.JSON(http.StatusNotFound, errorResponse{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, orderDetailResponse{
		Number:    result.Number.String(),
		Customer:  result.Customer.String(),
		Status:    result.Status.String(),
		Total:     result.Total.String(),
		Name:      result.Name,
		Address:   result.Address,
		Payment:   result.Payment.String(),
		Vendor:    phoneString(result.VendorPhone),
		Partner:   phoneString(result.PartnerPhone),
		Rating:    result.Rating,
		CreatedAt: result.CreatedAt,
	})
}

func phoneString(phone *kernel.Phone) *string {
	if phone == nil {
		return nil
	}
	value := phone.String()
	return &value
}
