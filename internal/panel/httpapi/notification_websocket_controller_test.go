package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"patient-panel/internal/infra/async"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/panel/httpapi"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NotificationWebSocketController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.NotificationWebSocketController
		server     *httptest.Server
		conn       *websocket.Conn
	)

	BeforeEach(func() {
		broker = async.NewLocalBroker()

		var err error
		controller, err = httpapi.NewNotificationWebSocketController(broker)
		Expect(err).NotTo(HaveOccurred())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/panel/notifications"
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		Expect(err).NotTo(HaveOccurred())
		Eventually(controller.Clients).Should(Equal(1))
	})

	AfterEach(func() {
		conn.Close()
		controller.Shutdown()
		server.Close()
		broker.Stop()
	})

	It("should forward toasts published through the notifier", func() {
		notifier := communication.NewBrokerNotifier(broker)
		Expect(notifier.Notify(context.Background(), domain.NewPatientUpdatedToast("a01000000000001"))).To(Succeed())

		var message map[string]any
		Expect(conn.SetReadDeadline(time.Now().Add(2 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&message)).To(Succeed())

		Expect(message["type"]).To(Equal("toast"))
		Expect(message["title"]).To(Equal("Success"))
		Expect(message["message"]).To(Equal("Patient has been updated!"))
		Expect(message["variant"]).To(Equal("success"))
		Expect(message["patient_id"]).To(Equal("a01000000000001"))
	})

	It("should forget clients that disconnect", func() {
		Expect(conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))).To(Succeed())

		Eventually(controller.Clients).Should(Equal(0))
	})
})
