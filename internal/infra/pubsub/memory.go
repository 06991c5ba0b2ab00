package pubsub

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

var ErrTopicBufferFull = errors.New("topic channel buffer full")

const _topicBufferSize = 100

type MemoryPublisherFactory struct {
	broker *MemoryBroker
}

func NewMemoryPublisherFactory() *MemoryPublisherFactory {
	return &MemoryPublisherFactory{
		broker: GetMemoryBroker(),
	}
}

func (f *MemoryPublisherFactory) New(topic Topic, _ Message) (Publisher, error) {
	return &MemoryPublisher{
		broker: f.broker,
		topic:  topic,
	}, nil
}

type MemoryPublisher struct {
	broker *MemoryBroker
	topic  Topic
}

func (p *MemoryPublisher) Publish(ctx context.Context, key Key, message Message) error {
	return p.broker.Publish(ctx, p.topic, key, message)
}

type MemoryConsumerFactory struct {
	broker *MemoryBroker
	group  string
}

func NewMemoryConsumerFactory(group string) *MemoryConsumerFactory {
	return &MemoryConsumerFactory{
		broker: GetMemoryBroker(),
		group:  group,
	}
}

func (f *MemoryConsumerFactory) New() Consumer {
	return &MemoryConsumer{
		broker: f.broker,
		group:  f.group,
	}
}

type MemoryConsumer struct {
	broker *MemoryBroker
	group  string
}

func (c *MemoryConsumer) Consume(topic Topic, handler MessageHandler, prototype Prototype) error {
	return c.broker.Subscribe(topic, c.group, handler, prototype)
}

// MemoryBroker is the process wide in-memory pubsub used in the local environment.
// Every consumer receives every message of its topic.
type MemoryBroker struct {
	topics map[Topic]*topicChannel
	mu     sync.RWMutex
}

type topicChannel struct {
	messages  chan messageEvent
	consumers []*consumerInfo
	mu        sync.RWMutex
}

type messageEvent struct {
	ctx     context.Context
	key     Key
	message Message
}

type consumerInfo struct {
	group     string
	handler   MessageHandler
	prototype Prototype
}

var (
	memoryBroker     *MemoryBroker
	memoryBrokerOnce sync.Once
)

func GetMemoryBroker() *MemoryBroker {
	memoryBrokerOnce.Do(func() {
		memoryBroker = &MemoryBroker{
			topics: make(map[Topic]*topicChannel),
		}
	})
	return memoryBroker
}

func (b *MemoryBroker) Publish(ctx context.Context, topic Topic, key Key, message Message) error {
	topicChan := b.topic(topic)

	event := messageEvent{
		ctx:     context.WithoutCancel(ctx),
		key:     key,
		message: message,
	}

	select {
	case topicChan.messages <- event:
		go b.deliver(topicChan)
	default:
		return fmt.Errorf("%s: %w", topic, ErrTopicBufferFull)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(topic Topic, group string, handler MessageHandler, prototype Prototype) error {
	topicChan := b.topic(topic)

	topicChan.mu.Lock()
	defer topicChan.mu.Unlock()

	topicChan.consumers = append(topicChan.consumers, &consumerInfo{
		group:     group,
		handler:   handler,
		prototype: prototype,
	})

	return nil
}

// MessageCount returns the number of undelivered messages of a topic.
func (b *MemoryBroker) MessageCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	topicChan, exists := b.topics[topic]
	if !exists {
		return 0
	}
	return len(topicChan.messages)
}

// Reset drops every topic and consumer.
func (b *MemoryBroker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.topics = make(map[Topic]*topicChannel)
}

func (b *MemoryBroker) topic(topic Topic) *topicChannel {
	b.mu.Lock()
	defer b.mu.Unlock()

	topicChan, exists := b.topics[topic]
	if !exists {
		topicChan = &topicChannel{
			messages: make(chan messageEvent, _topicBufferSize),
		}
		b.topics[topic] = topicChan
	}
	return topicChan
}

func (b *MemoryBroker) deliver(topicChan *topicChannel) {
	var event messageEvent
	select {
	case event = <-topicChan.messages:
	default:
		return
	}

	topicChan.mu.RLock()
	consumers := append([]*consumerInfo(nil), topicChan.consumers...)
	topicChan.mu.RUnlock()

	for _, c := range consumers {
		go func(c *consumerInfo) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic in message handler", slog.Any("panic", r))
				}
			}()

			if err := c.handler(event.ctx, event.key, event.message); err != nil {
				slog.Error("handling message",
					slog.String("group", c.group),
					slog.String("key", string(event.key)),
					slog.String("error", err.Error()))
			}
		}(c)
	}
}
