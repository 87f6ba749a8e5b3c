package router_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatorder/internal/core/application/router"
	"chatorder/internal/core/application/usecases/commands"
	"chatorder/internal/core/domain/model/chat"
	"chatorder/internal/core/domain/model/kernel"
	"chatorder/internal/core/ports"
)

// recordingHandlers captures routed commands in arrival order.
type recordingHandlers struct {
	mu            sync.Mutex
	conversations []commands.AdvanceConversationCommand
	operations    []commands.ApplyOperatorActionCommand
	delay         time.Duration
}

func (h *recordingHandlers) Handle(ctx context.Context, command any) error {
	if h.delay > 0 {
		time.Sleep(h.delay)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch cmd := command.(type) {
	case commands.AdvanceConversationCommand:
		h.conversations = append(h.conversations, cmd)
	case commands.ApplyOperatorActionCommand:
		h.operations = append(h.operations, cmd)
	}
	return nil
}

type conversationRecorder struct{ *recordingHandlers }

func (r conversationRecorder) Handle(ctx context.Context, command commands.AdvanceConversationCommand) error {
	return r.recordingHandlers.Handle(ctx, command)
}

type operatorRecorder struct{ *recordingHandlers }

func (r operatorRecorder) Handle(ctx context.Context, command commands.ApplyOperatorActionCommand) error {
	return r.recordingHandlers.Handle(ctx, command)
}

// staticRoles resolves roles from a fixed map.
type staticRoles struct {
	vendors  map[string]bool
	partners map[string]bool
}

func (s staticRoles) RoleOf(phone kernel.Phone) ports.Role {
	switch {
	case s.vendors[phone.String()]:
		return ports.RoleVendor
	case s.partners[phone.String()]:
		return ports.RoleDeliveryPartner
	default:
		return ports.RoleCustomer
	}
}

func newTestRouter(recorder *recordingHandlers) *router.Router {
	roles := staticRoles{
		vendors:  map[string]bool{"919000000001": true},
		partners: map[string]bool{"919000000009": true},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return router.NewRouter(roles, conversationRecorder{recorder}, operatorRecorder{recorder}, logger)
}

func phoneOf(t *testing.T, raw string) kernel.Phone {
	t.Helper()
	phone, err := kernel.NewPhone(raw)
	require.NoError(t, err)
	return phone
}

func Test_Router_HandleInbound(t *testing.T) {
	ctx := context.Background()

	t.Run("should route customer text to the conversation", func(t *testing.T) {
		recorder := &recordingHandlers{}
		r := newTestRouter(recorder)

		err := r.HandleInbound(ctx, phoneOf(t, "919876543210"), chat.NewTextEvent("hi"))

		require.NoError(t, err)
		require.Len(t, recorder.conversations, 1)
		assert.Empty(t, recorder.operations)
	})

	t.Run("should route vendor commands to the order lifecycle", func(t *testing.T) {
		recorder := &recordingHandlers{}
		r := newTestRouter(recorder)

		err := r.HandleInbound(ctx, phoneOf(t, "919000000001"), chat.NewTextEvent("accept ORD-123"))

		require.NoError(t, err)
		require.Len(t, recorder.operations, 1)
		assert.Equal(t, ports.RoleVendor, recorder.operations[0].Role())
		assert.Equal(t, chat.ActionAccept, recorder.operations[0].Action().Kind)
		assert.Empty(t, recorder.conversations, "operator commands never reach the dialog")
	})

	t.Run("should drop operator chatter that is not a command", func(t *testing.T) {
		recorder := &recordingHandlers{}
		r := newTestRouter(recorder)

		err := r.HandleInbound(ctx, phoneOf(t, "919000000009"), chat.NewTextEvent("on my way"))

		require.NoError(t, err)
		assert.Empty(t, recorder.operations)
		assert.Empty(t, recorder.conversations)
	})

	t.Run("should route customer feedback to the order lifecycle", func(t *testing.T) {
		recorder := &recordingHandlers{}
		r := newTestRouter(recorder)

		err := r.HandleInbound(ctx, phoneOf(t, "919876543210"), chat.NewTextEvent("feedback 5 ORD-123"))

		require.NoError(t, err)
		require.Len(t, recorder.operations, 1)
		assert.Equal(t, ports.RoleCustomer, recorder.operations[0].Role())
		assert.Equal(t, chat.ActionFeedback, recorder.operations[0].Action().Kind)
		assert.Equal(t, 5, recorder.operations[0].Action().Rating)
	})

	t.Run("should process one sender's events strictly in order", func(t *testing.T) {
		recorder := &recordingHandlers{delay: time.Millisecond}
		r := newTestRouter(recorder)
		sender := phoneOf(t, "919876543210")

		const n = 20
		texts := make([]string, n)
		for i := range texts {
			texts[i] = string(rune('a' + i))
		}

		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			text := texts[i]
			go func() {
				defer wg.Done()
				_ = r.HandleInbound(ctx, sender, chat.NewTextEvent(text))
			}()
			// Give each goroutine time to enqueue before the next arrives.
			time.Sleep(2 * time.Millisecond)
		}
		wg.Wait()

		require.Len(t, recorder.conversations, n)
		for i, cmd := range recorder.conversations {
			assert.Equal(t, texts[i], cmd.Event().Text)
		}
	})
}
