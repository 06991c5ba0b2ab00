package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"patient-panel/internal/infra/async"
	"patient-panel/internal/infra/httpserver"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/httpapi/internal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	_writeWait  = 10 * time.Second
	_pongWait   = 60 * time.Second
	_pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NotificationWebSocketController streams panel toasts to every connected client.
// Only the hub goroutine writes to the connections.
type NotificationWebSocketController struct {
	broker       async.InternalBroker
	subscription async.Subscription

	clients    map[*websocket.Conn]struct{}
	clientsMux sync.RWMutex
	register   chan *websocket.Conn
	unregister chan *websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewNotificationWebSocketController(broker async.InternalBroker) (*NotificationWebSocketController, error) {
	subscription, err := broker.Subscribe(communication.PanelNotificationsTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribing to panel notifications: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wsc := &NotificationWebSocketController{
		broker:       broker,
		subscription: subscription,
		clients:      make(map[*websocket.Conn]struct{}),
		register:     make(chan *websocket.Conn),
		unregister:   make(chan *websocket.Conn),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go wsc.run()

	return wsc, nil
}

var _ httpserver.Controller = (*NotificationWebSocketController)(nil)

func (wsc *NotificationWebSocketController) AddRoutes(router *http.ServeMux) {
	router.Handle("GET /ws/panel/notifications", wsc.handleWebSocket())
}

func (wsc *NotificationWebSocketController) Clients() int {
	wsc.clientsMux.RLock()
	defer wsc.clientsMux.RUnlock()

	return len(wsc.clients)
}

func (wsc *NotificationWebSocketController) handleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("websocket upgrade failed", slog.String("error", err.Error()))
			return
		}

		select {
		case wsc.register <- conn:
		case <-wsc.ctx.Done():
			conn.Close()
			return
		}

		slog.Info("notification client connected", slog.String("remote_addr", r.RemoteAddr))

		go wsc.readClient(conn)
	}
}

// readClient drains control frames until the client goes away.
func (wsc *NotificationWebSocketController) readClient(conn *websocket.Conn) {
	defer func() {
		select {
		case wsc.unregister <- conn:
		case <-wsc.ctx.Done():
		}
	}()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(_pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(_pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("websocket read error", slog.String("error", err.Error()))
			} else {
				slog.Debug("websocket connection closed", slog.String("error", err.Error()))
			}
			return
		}
	}
}

func (wsc *NotificationWebSocketController) run() {
	defer close(wsc.done)

	ticker := time.NewTicker(_pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-wsc.ctx.Done():
			return

		case conn := <-wsc.register:
			wsc.clientsMux.Lock()
			wsc.clients[conn] = struct{}{}
			wsc.clientsMux.Unlock()

		case conn := <-wsc.unregister:
			wsc.drop(conn)

		case <-ticker.C:
			wsc.each(func(conn *websocket.Conn) error {
				return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(_writeWait))
			})

		case msg, ok := <-wsc.subscription.Receiver:
			if !ok {
				return
			}
			if msg.Event != communication.ToastEvent {
				continue
			}
			toast, ok := msg.Value.(domain.Toast)
			if !ok {
				slog.Warn("unexpected toast payload", slog.String("type", fmt.Sprintf("%T", msg.Value)))
				continue
			}

			message := internal.ToToastMessage(toast)
			wsc.each(func(conn *websocket.Conn) error {
				_ = conn.SetWriteDeadline(time.Now().Add(_writeWait))
				return conn.WriteJSON(message)
			})
		}
	}
}

func (wsc *NotificationWebSocketController) each(write func(*websocket.Conn) error) {
	wsc.clientsMux.RLock()
	conns := make([]*websocket.Conn, 0, len(wsc.clients))
	for conn := range wsc.clients {
		conns = append(conns, conn)
	}
	wsc.clientsMux.RUnlock()

	for _, conn := range conns {
		if err := write(conn); err != nil {
			slog.Warn("writing to websocket client", slog.String("error", err.Error()))
			wsc.drop(conn)
		}
	}
}

func (wsc *NotificationWebSocketController) drop(conn *websocket.Conn) {
	wsc.clientsMux.Lock()
	defer wsc.clientsMux.Unlock()

	if _, ok := wsc.clients[conn]; ok {
		delete(wsc.clients, conn)
		conn.Close()
	}
}

func (wsc *NotificationWebSocketController) Shutdown() {
	slog.Info("shutting down notification websocket controller")
	wsc.cancel()
	<-wsc.done

	if err := wsc.broker.Unsubscribe(communication.PanelNotificationsTopic, wsc.subscription); err != nil {
		slog.Warn("unsubscribing panel notifications", slog.String("error", err.Error()))
	}

	wsc.clientsMux.Lock()
	defer wsc.clientsMux.Unlock()
	for conn := range wsc.clients {
		conn.Close()
		delete(wsc.clients, conn)
	}
}
