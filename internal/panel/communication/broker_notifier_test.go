package communication_test

import (
	"context"
	"patient-panel/internal/infra/async"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/domain"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BrokerNotifier", func() {
	var (
		broker   *async.LocalBroker
		notifier *communication.BrokerNotifier
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()
		notifier = communication.NewBrokerNotifier(broker)
	})

	AfterEach(func() {
		broker.Stop()
	})

	It("should succeed when nobody listens", func() {
		Expect(notifier.Notify(context.Background(), domain.NewPatientUpdatedToast("p1"))).To(Succeed())
	})

	It("should hand the toast to subscribers", func() {
		subscription, err := broker.Subscribe(communication.PanelNotificationsTopic)
		Expect(err).NotTo(HaveOccurred())

		toast := domain.NewPatientUpdatedToast("p1")
		Expect(notifier.Notify(context.Background(), toast)).To(Succeed())

		var msg async.BrokerMessage
		Eventually(subscription.Receiver).Should(Receive(&msg))
		Expect(msg.Event).To(Equal(communication.ToastEvent))
		Expect(msg.Value).To(Equal(toast))
	})
})
