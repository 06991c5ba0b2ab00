//go:build wireinject
// +build wireinject

package wire

import (
	"patient-panel/internal/infra/async"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/httpapi"
	"patient-panel/internal/panel/usecases"

	"github.com/google/wire"
)

var PanelServiceSet = wire.NewSet(
	provideAppConfig,
	provideRemoteStore,
	providePubSubFactory,
	providePublisherFactory,
	communication.NewBrokerNotifier,
	wire.Bind(new(usecases.Notifier), new(*communication.BrokerNotifier)),
	communication.NewVitalsEventPublisher,
	wire.Bind(new(usecases.VitalsPublisher), new(*communication.VitalsEventPublisher)),
	usecases.NewPanelService,
	wire.Bind(new(usecases.PanelService), new(*usecases.SimplePanelService)),
)

func InitializePanelController(broker async.InternalBroker) (*httpapi.PanelController, error) {
	wire.Build(
		PanelServiceSet,
		httpapi.NewPanelController,
	)
	return nil, nil
}

func InitializeNotificationWebSocketController(broker async.InternalBroker) (*httpapi.NotificationWebSocketController, error) {
	wire.Build(
		httpapi.NewNotificationWebSocketController,
	)
	return nil, nil
}
