package main

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"corteBack/internal/models"
	"corteBack/internal/repositories"
	"corteBack/internal/ws"
)

// appointmentsWS streams the owner's full appointment list on every remote
// change. The first message is the current list.
func (app *application) appointmentsWS(w http.ResponseWriter, r *http.Request) {
	app.serveCollectionWS(w, r, "appointments", func(ctx context.Context, userID string, push func(interface{})) repositories.Unsubscribe {
		return app.appointmentService.WatchAppointments(ctx, userID, func(list []models.Appointment) {
			push(list)
		})
	})
}

func (app *application) transactionsWS(w http.ResponseWriter, r *http.Request) {
	app.serveCollectionWS(w, r, "transactions", func(ctx context.Context, userID string, push func(interface{})) repositories.Unsubscribe {
		return app.transactionService.WatchTransactions(ctx, userID, func(list []models.Transaction) {
			push(list)
		})
	})
}

func (app *application) stockWS(w http.ResponseWriter, r *http.Request) {
	app.serveCollectionWS(w, r, "stock", func(ctx context.Context, userID string, push func(interface{})) repositories.Unsubscribe {
		return app.stockService.WatchItems(ctx, userID, func(list []models.StockItem) {
			push(list)
		})
	})
}

type openWatch func(ctx context.Context, userID string, push func(interface{})) repositories.Unsubscribe

func (app *application) serveCollectionWS(w http.ResponseWriter, r *http.Request, collection string, open openWatch) {
	token := wsToken(r)
	if token == "" {
		http.Error(w, "Authorization missing", http.StatusUnauthorized)
		return
	}
	userID, err := app.userService.CurrentUser(token)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := app.hub.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.errorLog.Printf("sync %s ws upgrade failed: %v", collection, err)
		return
	}

	key := ws.Key(userID, collection)

	// The watch is opened after the connection is registered, so teardown has
	// to tolerate closing before the unsubscribe exists.
	holder := &unsubHolder{}
	app.hub.Register(key, conn, holder.run)

	// The watch outlives this handler; the unsubscribe is its only owner.
	unsub := open(context.Background(), userID, func(payload interface{}) {
		app.hub.Push(key, payload)
	})
	holder.set(unsub)
}

// wsToken pulls the access token from the query string or, when present, the
// Authorization header.
func wsToken(r *http.Request) string {
	if v := r.URL.Query().Get("token"); v != "" {
		return v
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// unsubHolder hands the unsubscribe func across the registration race: if the
// connection closed before the watch opened, the unsubscribe runs immediately.
type unsubHolder struct {
	mu     sync.Mutex
	fn     repositories.Unsubscribe
	closed bool
}

func (h *unsubHolder) set(fn repositories.Unsubscribe) {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		fn()
		return
	}
	h.fn = fn
	h.mu.Unlock()
}

func (h *unsubHolder) run() {
	h.mu.Lock()
	fn := h.fn
	h.fn = nil
	h.closed = true
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}
