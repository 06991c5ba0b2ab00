package avro_test

import (
	"patient-panel/internal/infra/utils"
	"patient-panel/internal/panel/domain"
	"patient-panel/internal/shared_kernel/avro"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AvroCodec", func() {
	var recordedAt time.Time

	BeforeEach(func() {
		recordedAt = time.Date(2024, 5, 1, 10, 30, 0, 123000000, time.UTC)
	})

	When("encoding a domain event", func() {
		It("should decode into the avro message", func() {
			codec, err := avro.NewAvroCodec(domain.VitalsRecorded{})
			Expect(err).NotTo(HaveOccurred())

			data, err := codec.Encode(domain.VitalsRecorded{
				PatientID:   "a01000000000001",
				Temperature: utils.Ptr(98.6),
				Pulse:       utils.Ptr(80.0),
				RecordedAt:  recordedAt,
			})
			Expect(err).NotTo(HaveOccurred())

			decoded, err := codec.Decode(data)
			Expect(err).NotTo(HaveOccurred())

			message, ok := decoded.(*avro.AvroVitalsRecorded)
			Expect(ok).To(BeTrue())
			Expect(message.PatientID).To(Equal("a01000000000001"))
			Expect(*message.Temperature).To(Equal(98.6))
			Expect(*message.Pulse).To(Equal(80.0))
			Expect(message.RecordedAt.Equal(recordedAt)).To(BeTrue())
		})
	})

	When("a vital is absent", func() {
		It("should keep it absent", func() {
			codec, err := avro.NewAvroCodec(&avro.AvroVitalsRecorded{})
			Expect(err).NotTo(HaveOccurred())

			data, err := codec.Encode(&avro.AvroVitalsRecorded{
				PatientID:  "a01000000000002",
				Pulse:      utils.Ptr(72.0),
				RecordedAt: recordedAt,
				TraceID:    "4bf92f3577b34da6a3ce929d0e0e4736",
			})
			Expect(err).NotTo(HaveOccurred())

			decoded, err := codec.Decode(data)
			Expect(err).NotTo(HaveOccurred())

			event := decoded.(*avro.AvroVitalsRecorded).ToDomain()
			Expect(event.Temperature).To(BeNil())
			Expect(*event.Pulse).To(Equal(72.0))
			Expect(decoded.(*avro.AvroVitalsRecorded).TraceID).To(Equal("4bf92f3577b34da6a3ce929d0e0e4736"))
		})
	})

	It("should reject prototypes without a schema", func() {
		_, err := avro.NewAvroCodec(struct{ Name string }{})
		Expect(err).To(MatchError(avro.ErrUnsupportedPrototype))
	})

	It("should reject values of another type", func() {
		codec, err := avro.NewAvroCodec(domain.VitalsRecorded{})
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Encode("not an event")
		Expect(err).To(MatchError(avro.ErrUnsupportedPrototype))
	})
})
