package session

import (
	consumer2 "atlas-maple2/kafka/consumer"
	session2 "atlas-maple2/kafka/message/session"
	"atlas-maple2/session"
	"context"

	"github.com/Chronicle20/atlas-constants/channel"
	"github.com/Chronicle20/atlas-constants/world"
	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	"github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	"github.com/sirupsen/logrus"
)

// ProcessorProvider builds the session processor for the tenant carried by ctx.
type ProcessorProvider func(l logrus.FieldLogger, ctx context.Context) *session.Processor

func InitConsumers(l logrus.FieldLogger) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(brokers []string, consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(brokers []string, consumerGroupId string) {
		return func(brokers []string, consumerGroupId string) {
			rf(consumer2.NewConfig(l)(brokers)("session_status_event")(session2.EnvEventTopicSessionStatus)(consumerGroupId), consumer.SetHeaderParsers(consumer.SpanHeaderParser, consumer.TenantHeaderParser))
		}
	}
}

func InitHandlers(l logrus.FieldLogger) func(worldId world.Id, channelId channel.Id) func(pp ProcessorProvider) func(rf func(topic string, handler handler.Handler) (string, error)) {
	return func(worldId world.Id, channelId channel.Id) func(pp ProcessorProvider) func(rf func(topic string, handler handler.Handler) (string, error)) {
		return func(pp ProcessorProvider) func(rf func(topic string, handler handler.Handler) (string, error)) {
			return func(rf func(topic string, handler handler.Handler) (string, error)) {
				t, err := topic.EnvProvider(l)(session2.EnvEventTopicSessionStatus)()
				if err != nil || t == "" {
					l.WithError(err).Errorf("Unable to resolve topic for [%s], session handlers not registered.", session2.EnvEventTopicSessionStatus)
					return
				}
				_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleSessionCreated(worldId, channelId)(pp))))
				_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleSessionDestroyed(worldId, channelId)(pp))))
			}
		}
	}
}

func handleSessionCreated(worldId world.Id, channelId channel.Id) func(pp ProcessorProvider) message.Handler[session2.StatusEvent] {
	return func(pp ProcessorProvider) message.Handler[session2.StatusEvent] {
		return func(l logrus.FieldLogger, ctx context.Context, e session2.StatusEvent) {
			if e.Type != session2.EventSessionStatusCreated {
				return
			}
			if world.Id(e.WorldId) != worldId || channel.Id(e.ChannelId) != channelId {
				return
			}
			if err := pp(l, ctx).Create(e.SessionId, e.CharacterId, world.Id(e.WorldId), channel.Id(e.ChannelId)); err != nil {
				l.WithError(err).Errorf("Unable to create session [%s] for character [%d].", e.SessionId, e.CharacterId)
			}
		}
	}
}

func handleSessionDestroyed(worldId world.Id, channelId channel.Id) func(pp ProcessorProvider) message.Handler[session2.StatusEvent] {
	return func(pp ProcessorProvider) message.Handler[session2.StatusEvent] {
		return func(l logrus.FieldLogger, ctx context.Context, e session2.StatusEvent) {
			if e.Type != session2.EventSessionStatusDestroyed {
				return
			}
			if world.Id(e.WorldId) != worldId || channel.Id(e.ChannelId) != channelId {
				return
			}
			if err := pp(l, ctx).Destroy(e.SessionId, e.CharacterId); err != nil {
				l.WithError(err).Errorf("Unable to destroy session [%s] for character [%d].", e.SessionId, e.CharacterId)
			}
		}
	}
}
