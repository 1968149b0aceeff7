package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/sirawitp/siamshop-backend/api/middleware"
	"github.com/sirawitp/siamshop-backend/api/responses"
	"github.com/sirawitp/siamshop-backend/api/validators"
	ordersvc "github.com/sirawitp/siamshop-backend/internal/orders"
	"github.com/sirawitp/siamshop-backend/pkg/db/models"
	"github.com/sirawitp/siamshop-backend/pkg/enums"
	pkgerrors "github.com/sirawitp/siamshop-backend/pkg/errors"
	"github.com/sirawitp/siamshop-backend/pkg/logger"
	"github.com/sirawitp/siamshop-backend/pkg/pagination"
	redisclient "github.com/sirawitp/siamshop-backend/pkg/redis"
)

const streamHeartbeatInterval = 25 * time.Second

// EventSubscriber opens a pub/sub subscription on the given channels.
type EventSubscriber interface {
	Subscribe(ctx context.Context, channels ...string) (*redislib.PubSub, error)
}

// ListMyOrders pages through the caller's order history, newest first.
func ListMyOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		uid, err := cartCaller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := parsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), uid, *params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// GetMyOrder returns an order with its line items. Customers only see
// their own orders; staff can open any order from the same route.
func GetMyOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		uid, err := cartCaller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		var order *models.Order
		if enums.Role(middleware.RoleFromContext(r.Context())).IsStaff() {
			order, err = svc.AdminGet(r.Context(), orderID)
		} else {
			order, err = svc.GetMine(r.Context(), uid, orderID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// StreamMyOrders pushes the caller's order lifecycle events over SSE.
func StreamMyOrders(sub EventSubscriber, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := cartCaller(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		streamOrderEvents(w, r, sub, logg, func(event ordersvc.Event) bool {
			return event.UserID == uid
		})
	}
}

// StreamAllOrders pushes every order lifecycle event over SSE. Staff only;
// the route guards access.
func StreamAllOrders(sub EventSubscriber, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		streamOrderEvents(w, r, sub, logg, func(ordersvc.Event) bool { return true })
	}
}

func streamOrderEvents(w http.ResponseWriter, r *http.Request, sub EventSubscriber, logg *logger.Logger, keep func(ordersvc.Event) bool) {
	if sub == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event subscriber unavailable"))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
		return
	}

	pubsub, err := sub.Subscribe(r.Context(), redisclient.OrderEventsChannel)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribing to order events"))
		return
	}
	defer pubsub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Opening comment so proxies commit to the stream immediately.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(streamHeartbeatInterval)
	defer heartbeat.Stop()

	messages := pubsub.Channel()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		case msg, open := <-messages:
			if !open {
				return
			}
			var event ordersvc.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "dropping malformed order event")
				continue
			}
			if !keep(event) {
				continue
			}
			fmt.Fprintf(w, "event: order\ndata: %s\n\n", msg.Payload)
			flusher.Flush()
		}
	}
}

func parsePageParams(r *http.Request) (*pagination.Params, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}
	return &pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}, nil
}
