package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"patient-panel/internal/shared_kernel/avro"
	"strings"
	"sync"
	"time"

	"github.com/lovoo/goka"
)

const (
	_maxConnectRetries = 10
	_connectRetryDelay = 5 * time.Second
)

type publisherKey struct {
	brokers       string
	topic         string
	prototypeType string
}

type publisherInstance struct {
	publisher *KafkaPublisher
	once      sync.Once
	err       error
}

var (
	publishersMap   = make(map[publisherKey]*publisherInstance)
	publishersMutex sync.Mutex
)

// NewKafkaPublisher returns the publisher shared by every caller asking for the same brokers,
// topic and prototype. Messages with an avro schema are avro encoded, anything else as JSON.
func NewKafkaPublisher(brokers []string, topic string, prototype any) (*KafkaPublisher, error) {
	key := publisherKey{
		brokers:       strings.Join(brokers, ","),
		topic:         topic,
		prototypeType: fmt.Sprintf("%T", prototype),
	}

	publishersMutex.Lock()
	instance, exists := publishersMap[key]
	if !exists {
		instance = &publisherInstance{}
		publishersMap[key] = instance
	}
	publishersMutex.Unlock()

	instance.once.Do(func() {
		slog.Debug("creating kafka publisher",
			slog.String("topic", topic),
			slog.String("prototypeType", key.prototypeType))

		codec, err := newCodec(prototype)
		if err != nil {
			instance.err = err
			return
		}

		for try := 0; try < _maxConnectRetries; try++ {
			slog.Debug("connecting to kafka brokers", slog.String("brokers", key.brokers))
			emitter, err := goka.NewEmitter(brokers, goka.Stream(topic), codec)
			if err == nil {
				instance.publisher = &KafkaPublisher{emitter: emitter}
				return
			}
			slog.Warn("connecting to kafka brokers", slog.Int("try", try+1), slog.String("error", err.Error()))
			time.Sleep(_connectRetryDelay)
		}

		instance.err = fmt.Errorf("connecting to kafka brokers after %d retries", _maxConnectRetries)
	})

	if instance.err != nil {
		return nil, instance.err
	}

	return instance.publisher, nil
}

func newCodec(prototype any) (goka.Codec, error) {
	codec, err := avro.NewAvroCodec(prototype)
	if errors.Is(err, avro.ErrUnsupportedPrototype) {
		return newJSONCodec(prototype), nil
	}
	if err != nil {
		return nil, fmt.Errorf("creating avro codec: %w", err)
	}
	return codec, nil
}

var _ Publisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	emitter *goka.Emitter
}

func (p *KafkaPublisher) Publish(_ context.Context, key Key, message Message) error {
	slog.Debug("publishing message", slog.String("key", string(key)))
	if err := p.emitter.EmitSync(string(key), message); err != nil {
		slog.Error("emitting message", slog.String("error", err.Error()))
		return err
	}

	return nil
}

// Close flushes pending messages and releases the producer.
func (p *KafkaPublisher) Close() error {
	return p.emitter.Finish()
}

// CloseKafkaPublishers closes every publisher created by NewKafkaPublisher.
func CloseKafkaPublishers() {
	publishersMutex.Lock()
	defer publishersMutex.Unlock()

	for key, instance := range publishersMap {
		if instance.publisher == nil {
			continue
		}
		if err := instance.publisher.Close(); err != nil {
			slog.Error("closing kafka publisher", slog.String("topic", key.topic), slog.String("error", err.Error()))
		}
	}
	publishersMap = make(map[publisherKey]*publisherInstance)
}

var _ PublisherFactory = (*KafkaPublisherFactory)(nil)

type KafkaPublisherFactoryOptions struct {
	Brokers []string
}

func NewKafkaPublisherFactory(opts KafkaPublisherFactoryOptions) *KafkaPublisherFactory {
	return &KafkaPublisherFactory{
		brokers: opts.Brokers,
	}
}

type KafkaPublisherFactory struct {
	brokers []string
}

func (f *KafkaPublisherFactory) New(topic Topic, prototype Message) (Publisher, error) {
	publisher, err := NewKafkaPublisher(f.brokers, string(topic), prototype)
	if err != nil {
		return nil, fmt.Errorf("creating publisher: %w", err)
	}

	return publisher, nil
}
