package producer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

var ErrTopicUnresolved = errors.New("topic unresolved")

type MessageProducer func(provider model.Provider[[]kafka.Message]) error

// Provider resolves a topic token to a producer for that topic.
type Provider func(token string) MessageProducer

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func ProviderImpl(l logrus.FieldLogger) func(ctx context.Context) func(w Writer) Provider {
	return func(ctx context.Context) func(w Writer) Provider {
		return func(w Writer) Provider {
			return func(token string) MessageProducer {
				t, terr := topic.EnvProvider(l)(token)()
				return func(provider model.Provider[[]kafka.Message]) error {
					if terr != nil || t == "" {
						l.WithError(terr).Errorf("Unable to resolve topic for [%s].", token)
						return fmt.Errorf("%w: %s", ErrTopicUnresolved, token)
					}
					ms, err := provider()
					if err != nil {
						return err
					}
					for i := range ms {
						ms[i].Topic = t
					}
					err = w.WriteMessages(ctx, ms...)
					if err != nil {
						l.WithError(err).Errorf("Unable to emit [%d] message(s) on topic [%s].", len(ms), t)
					}
					return err
				}
			}
		}
	}
}
