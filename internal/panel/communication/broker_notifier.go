package communication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"patient-panel/internal/infra/async"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/usecases"
)

const (
	PanelNotificationsTopic async.BrokerTopicName = "panel_notifications"
	ToastEvent                                    = "toast"
)

func NewBrokerNotifier(broker async.InternalBroker) *BrokerNotifier {
	return &BrokerNotifier{
		broker: broker,
	}
}

var _ usecases.Notifier = (*BrokerNotifier)(nil)

// BrokerNotifier hands toasts to whoever listens on the panel notifications topic.
type BrokerNotifier struct {
	broker async.InternalBroker
}

func (n *BrokerNotifier) Notify(ctx context.Context, toast domain.Toast) error {
	err := n.broker.Publish(ctx, PanelNotificationsTopic, async.BrokerMessage{
		Event: ToastEvent,
		Value: toast,
	})
	if errors.Is(err, async.ErrTopicNotFound) {
		slog.Debug("no listeners for toast", slog.String("toast_id", toast.ID.String()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("publishing toast: %w", err)
	}

	return nil
}
