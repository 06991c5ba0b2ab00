package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"patient-panel/internal/infra/pubsub"
	"time"

	"github.com/gorilla/websocket"
)

const (
	_notificationWait   = 2 * time.Second
	_notificationSettle = 200 * time.Millisecond
)

func (fc *FeatureContext) iListenForPanelNotifications() error {
	url := fc.apiDriver.WebSocketURL("/ws/panel/notifications")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("websocket connection failed with status %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("websocket connection failed: %w", err)
	}
	fc.wsConn = conn

	go fc.readToasts(conn)

	deadline := time.Now().Add(_notificationWait)
	for fc.notifications.Clients() == 0 {
		if time.Now().After(deadline) {
			return fmt.Errorf("websocket client was never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (fc *FeatureContext) readToasts(conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var toast map[string]any
		if err := json.Unmarshal(message, &toast); err != nil {
			continue
		}

		fc.toastsMu.Lock()
		fc.toasts = append(fc.toasts, toast)
		fc.toastsMu.Unlock()
	}
}

func (fc *FeatureContext) iShouldReceiveToastsTitled(count int, variant, title string) error {
	matching := func() int {
		fc.toastsMu.Lock()
		defer fc.toastsMu.Unlock()

		n := 0
		for _, toast := range fc.toasts {
			if toast["type"] == "toast" && toast["variant"] == variant && toast["title"] == title {
				n++
			}
		}
		return n
	}

	deadline := time.Now().Add(_notificationWait)
	for matching() < count && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(_notificationSettle)

	fc.require.Equal(count, matching(), "Unexpected number of toasts")
	return nil
}

func (fc *FeatureContext) recordVitals(_ context.Context, key pubsub.Key, _ pubsub.Prototype) error {
	fc.vitalsMu.Lock()
	defer fc.vitalsMu.Unlock()
	fc.vitalsKeys = append(fc.vitalsKeys, string(key))
	return nil
}

func (fc *FeatureContext) vitalsRecordedEventsShouldBePublished(count int, patientID string) error {
	published := func() int {
		fc.vitalsMu.Lock()
		defer fc.vitalsMu.Unlock()

		n := 0
		for _, key := range fc.vitalsKeys {
			if key == patientID {
				n++
			}
		}
		return n
	}

	deadline := time.Now().Add(_notificationWait)
	for published() < count && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(_notificationSettle)

	fc.require.Equal(count, published(), "Unexpected number of vitals recorded events")
	return nil
}
