package pubsub

// Factory picks the pubsub implementation for the environment: in memory for local, kafka otherwise.
type Factory struct {
	publisherFactory PublisherFactory
}

func NewFactory(opts FactoryOptions) *Factory {
	if opts.Environment == "local" {
		return &Factory{
			publisherFactory: NewMemoryPublisherFactory(),
		}
	}

	return &Factory{
		publisherFactory: NewKafkaPublisherFactory(KafkaPublisherFactoryOptions{
			Brokers: opts.KafkaBrokers,
		}),
	}
}

type FactoryOptions struct {
	Environment  string
	KafkaBrokers []string
}

func (f *Factory) GetPublisherFactory() PublisherFactory {
	return f.publisherFactory
}
