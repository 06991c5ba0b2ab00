package communication_test

import (
	"context"
	"errors"
	"patient-panel/internal/infra/pubsub"
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/shared_kernel/avro"
	mockpubsub "patient-panel/test/unit/doubles/infra/pubsub"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

var _ = Describe("VitalsEventPublisher", func() {
	var (
		ctrl          *gomock.Controller
		mockFactory   *mockpubsub.MockPublisherFactory
		mockPublisher *mockpubsub.MockPublisher
		event         domain.VitalsRecorded
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		mockFactory = mockpubsub.NewMockPublisherFactory(ctrl)
		mockPublisher = mockpubsub.NewMockPublisher(ctrl)
		event = domain.VitalsRecorded{
			PatientID:  "a01000000000001",
			Pulse:      utils.Ptr(80.0),
			RecordedAt: time.Date(2024, 3, 1, 10, 30, 0, 123456789, time.UTC),
		}
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	It("should fail when the publisher cannot be created", func() {
		mockFactory.EXPECT().New(communication.VitalsRecordedTopic, gomock.Any()).Return(nil, errors.New("no brokers"))

		_, err := communication.NewVitalsEventPublisher(mockFactory)
		Expect(err).To(HaveOccurred())
	})

	It("should publish the avro message keyed by patient id with the trace ids", func() {
		mockFactory.EXPECT().
			New(communication.VitalsRecordedTopic, gomock.AssignableToTypeOf(&avro.AvroVitalsRecorded{})).
			Return(mockPublisher, nil)

		var published *avro.AvroVitalsRecorded
		mockPublisher.EXPECT().
			Publish(gomock.Any(), pubsub.Key("a01000000000001"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ pubsub.Key, message pubsub.Message) error {
				published = message.(*avro.AvroVitalsRecorded)
				return nil
			})

		publisher, err := communication.NewVitalsEventPublisher(mockFactory)
		Expect(err).NotTo(HaveOccurred())

		traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
		ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		}))

		Expect(publisher.Publish(ctx, event)).To(Succeed())
		Expect(published.PatientID).To(Equal("a01000000000001"))
		Expect(*published.Pulse).To(Equal(80.0))
		Expect(published.Temperature).To(BeNil())
		Expect(published.RecordedAt).To(Equal(time.Date(2024, 3, 1, 10, 30, 0, 123000000, time.UTC)))
		Expect(published.TraceID).To(Equal("4bf92f3577b34da6a3ce929d0e0e4736"))
		Expect(published.SpanID).To(Equal("00f067aa0ba902b7"))
	})

	It("should wrap publish failures", func() {
		mockFactory.EXPECT().New(gomock.Any(), gomock.Any()).Return(mockPublisher, nil)
		brokerErr := errors.New("broker down")
		mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(brokerErr)

		publisher, err := communication.NewVitalsEventPublisher(mockFactory)
		Expect(err).NotTo(HaveOccurred())

		Expect(publisher.Publish(context.Background(), event)).To(MatchError(brokerErr))
	})

	It("should deliver through the in-memory broker", func() {
		broker := pubsub.GetMemoryBroker()
		broker.Reset()
		received := make(chan pubsub.Key, 1)
		Expect(broker.Subscribe(communication.VitalsRecordedTopic, "vitals-test", func(_ context.Context, key pubsub.Key, _ pubsub.Prototype) error {
			received <- key
			return nil
		}, &avro.AvroVitalsRecorded{})).To(Succeed())

		publisher, err := communication.NewVitalsEventPublisher(pubsub.NewMemoryPublisherFactory())
		Expect(err).NotTo(HaveOccurred())

		Expect(publisher.Publish(context.Background(), event)).To(Succeed())
		Eventually(received).Should(Receive(Equal(pubsub.Key("a01000000000001"))))
	})
})
