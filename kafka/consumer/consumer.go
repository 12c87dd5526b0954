package consumer

import (
	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/sirupsen/logrus"
)

func NewConfig(l logrus.FieldLogger) func(brokers []string) func(name string) func(token string) func(groupId string) consumer.Config {
	return func(brokers []string) func(name string) func(token string) func(groupId string) consumer.Config {
		return func(name string) func(token string) func(groupId string) consumer.Config {
			return func(token string) func(groupId string) consumer.Config {
				t, err := topic.EnvProvider(l)(token)()
				if err != nil || t == "" {
					l.WithError(err).Errorf("Unable to resolve topic for [%s] consumer [%s].", token, name)
				}
				return func(groupId string) consumer.Config {
					return consumer.NewConfig(brokers, name, t, groupId)
				}
			}
		}
	}
}
