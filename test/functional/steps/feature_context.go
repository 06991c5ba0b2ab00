package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"patient-panel/internal/infra/async"
	"patient-panel/internal/infra/httpserver"
	"patient-panel/internal/infra/pubsub"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/httpapi"
	"patient-panel/internal/panel/usecases"
	"patient-panel/internal/shared_kernel/avro"
	"patient-panel/test/functional/driver"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type FeatureContext struct {
	apiDriver     *driver.APIDriver
	apex          *driver.FakeApex
	server        *httptest.Server
	broker        *async.LocalBroker
	notifications *httpapi.NotificationWebSocketController

	response     *http.Response
	responseData map[string]any
	rows         []map[string]any
	savedErrors  any

	wsConn     *websocket.Conn
	toastsMu   sync.Mutex
	toasts     []map[string]any
	vitalsMu   sync.Mutex
	vitalsKeys []string

	require *require.Assertions
	t       godog.TestingT
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Generic steps
	ctx.Then(`^the response status code should be (\d+)$`, fc.theResponseStatusCodeShouldBe)
	ctx.Then(`^the response message should be "([^"]*)"$`, fc.theResponseMessageShouldBe)
	ctx.When(`^I call the healthz endpoint$`, fc.iCallTheHealthzEndpoint)
	ctx.Then(`^the response should contain status information$`, fc.theResponseShouldContainStatusInformation)

	// Remote store steps
	ctx.Given(`^the remote store holds the patients:$`, fc.theRemoteStoreHoldsThePatients)
	ctx.Given(`^patient "([^"]*)" takes "([^"]*)" "([^"]*)" since "([^"]*)"$`, fc.patientTakesSince)
	ctx.Given(`^the remote store rejects updates with "([^"]*)"$`, fc.theRemoteStoreRejectsUpdatesWith)
	ctx.Given(`^the remote store accepts updates again$`, fc.theRemoteStoreAcceptsUpdatesAgain)
	ctx.Then(`^the remote store should have received (\d+) updates?$`, fc.theRemoteStoreShouldHaveReceivedUpdates)
	ctx.Then(`^the last update sent to the remote store should be '([^']*)'$`, fc.theLastUpdateSentToTheRemoteStoreShouldBe)

	// Panel steps
	ctx.Given(`^the panel has loaded the patients$`, fc.thePanelHasLoadedThePatients)
	ctx.When(`^I load the patients$`, fc.iLoadThePatients)
	ctx.Then(`^the panel should list (\d+) patients$`, fc.thePanelShouldListPatients)
	ctx.When(`^I edit patient "([^"]*)" setting (pulse|temperature) to "([^"]*)"$`, fc.iEditPatientSettingTo)
	ctx.When(`^I edit patient "([^"]*)" setting pulse to "([^"]*)" and temperature to "([^"]*)"$`, fc.iEditPatientSettingPulseAndTemperature)
	ctx.When(`^I submit patient "([^"]*)"$`, fc.iSubmitPatient)
	ctx.Then(`^the submission state should be "([^"]*)"$`, fc.theSubmissionStateShouldBe)
	ctx.Then(`^patient "([^"]*)" should have submission (enabled|disabled)$`, fc.patientShouldHaveSubmission)
	ctx.Then(`^patient "([^"]*)" should have (pulse|temperature) (\S+)$`, fc.patientShouldHaveVital)
	ctx.Then(`^patient "([^"]*)" should show the error "([^"]*)"$`, fc.patientShouldShowTheError)
	ctx.Then(`^patient "([^"]*)" should show no errors$`, fc.patientShouldShowNoErrors)
	ctx.When(`^I remember the errors of patient "([^"]*)"$`, fc.iRememberTheErrorsOfPatient)
	ctx.Then(`^the errors of patient "([^"]*)" should be unchanged$`, fc.theErrorsOfPatientShouldBeUnchanged)
	ctx.Then(`^the panel status should report the error "([^"]*)"$`, fc.thePanelStatusShouldReportTheError)

	// Detail steps
	ctx.When(`^I view the details of patient "([^"]*)"$`, fc.iViewTheDetailsOfPatient)
	ctx.Then(`^the detail view should be labelled "([^"]*)"$`, fc.theDetailViewShouldBeLabelled)
	ctx.Then(`^the detail view should list (\d+) medications?$`, fc.theDetailViewShouldListMedications)
	ctx.Then(`^the detail view should list "([^"]*)" "([^"]*)" starting "([^"]*)"$`, fc.theDetailViewShouldListStarting)
	ctx.Then(`^the detail view should have no error$`, fc.theDetailViewShouldHaveNoError)

	// Notification steps
	ctx.Given(`^I listen for panel notifications$`, fc.iListenForPanelNotifications)
	ctx.Then(`^I should receive (\d+) "([^"]*)" toasts? titled "([^"]*)"$`, fc.iShouldReceiveToastsTitled)
	ctx.Then(`^(\d+) vitals recorded events? should be published for patient "([^"]*)"$`, fc.vitalsRecordedEventsShouldBePublished)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, fc.start()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		fc.stop()
		return ctx, err
	})
}

// start wires a panel service against a fake Apex backend, the way cmd/api does in apex mode.
func (fc *FeatureContext) start() error {
	fc.apex = driver.NewFakeApex()

	remote, err := communication.NewApexRemoteStore(context.Background(), communication.ApexConfig{
		BaseURL:     fc.apex.URL(),
		AccessToken: "functional-token",
		Timeout:     5 * time.Second,
		RetryDelay:  time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("creating apex remote store: %w", err)
	}

	pubsub.GetMemoryBroker().Reset()
	consumer := pubsub.NewMemoryConsumerFactory("functional").New()
	if err := consumer.Consume(communication.VitalsRecordedTopic, fc.recordVitals, &avro.AvroVitalsRecorded{}); err != nil {
		return fmt.Errorf("subscribing to vitals: %w", err)
	}

	publisher, err := communication.NewVitalsEventPublisher(pubsub.NewMemoryPublisherFactory())
	if err != nil {
		return fmt.Errorf("creating vitals publisher: %w", err)
	}

	fc.broker = async.NewLocalBroker()
	service := usecases.NewPanelService(remote, communication.NewBrokerNotifier(fc.broker), publisher)

	fc.notifications, err = httpapi.NewNotificationWebSocketController(fc.broker)
	if err != nil {
		return fmt.Errorf("creating notification controller: %w", err)
	}

	server := httpserver.NewServer(httpserver.ServerOptions{},
		httpapi.NewPanelController(service),
		fc.notifications,
	)
	fc.server = httptest.NewServer(server.Handler())
	fc.apiDriver = driver.NewAPIDriver(fc.server.URL)

	return nil
}

func (fc *FeatureContext) stop() {
	if fc.wsConn != nil {
		fc.wsConn.Close()
	}
	if fc.notifications != nil {
		fc.notifications.Shutdown()
	}
	if fc.server != nil {
		fc.server.Close()
	}
	if fc.broker != nil {
		fc.broker.Stop()
	}
	if fc.apex != nil {
		fc.apex.Close()
	}
}

func (fc *FeatureContext) reset() {
	fc.apiDriver = nil
	fc.apex = nil
	fc.server = nil
	fc.broker = nil
	fc.notifications = nil
	fc.response = nil
	fc.responseData = nil
	fc.rows = nil
	fc.savedErrors = nil
	fc.wsConn = nil

	fc.toastsMu.Lock()
	fc.toasts = nil
	fc.toastsMu.Unlock()

	fc.vitalsMu.Lock()
	fc.vitalsKeys = nil
	fc.vitalsMu.Unlock()
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(target)
}

func (fc *FeatureContext) decodeRows(response *http.Response) ([]map[string]any, error) {
	var rows struct {
		Data []map[string]any `json:"data"`
	}
	if err := fc.decodeBody(response.Body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows response: %w", err)
	}
	return rows.Data, nil
}
