package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker fans messages out to in-process subscribers. A topic exists once it has been
// subscribed to, even if every subscriber left since.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	mu           sync.RWMutex
	once         sync.Once
	active       bool
	done         chan struct{}
	inFlight     sync.WaitGroup
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	subscription := Subscription{ID: uuid.NewString(), Receiver: make(chan BrokerMessage)}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscriptors[topic] = append(b.subscriptors[topic], &subscriptor{
		subscription: subscription,
		active:       true,
		done:         make(chan struct{}),
	})
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].safeClose()

	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors, ok := b.subscriptors[topic]
	if !ok {
		return ErrTopicNotFound
	}

	active := subscriptors[:0]
	for _, s := range subscriptors {
		if s.deliver(msg) {
			active = append(active, s)
		}
	}
	b.subscriptors[topic] = active

	return nil
}

func (b *LocalBroker) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

// deliver sends msg in the background unless the subscriptor is closed.
// It reports whether the subscriptor is still active.
func (s *subscriptor) deliver(msg BrokerMessage) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.active {
		return false
	}

	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()
		select {
		case s.subscription.Receiver <- msg:
		case <-s.done:
		}
	}()
	return true
}

func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		s.mu.Lock()
		s.active = false
		close(s.done)
		s.mu.Unlock()

		go func() {
			s.inFlight.Wait()
			close(s.subscription.Receiver)
		}()
	})
}
