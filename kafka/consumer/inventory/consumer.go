package inventory

import (
	"atlas-maple2/inventory"
	"atlas-maple2/item"
	consumer2 "atlas-maple2/kafka/consumer"
	inventory2 "atlas-maple2/kafka/message/inventory"
	"atlas-maple2/session"
	"atlas-maple2/tab"
	"context"

	"github.com/Chronicle20/atlas-kafka/consumer"
	"github.com/Chronicle20/atlas-kafka/handler"
	"github.com/Chronicle20/atlas-kafka/message"
	"github.com/Chronicle20/atlas-kafka/topic"
	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
)

func InitConsumers(l logrus.FieldLogger) func(func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(brokers []string, consumerGroupId string) {
	return func(rf func(config consumer.Config, decorators ...model.Decorator[consumer.Config])) func(brokers []string, consumerGroupId string) {
		return func(brokers []string, consumerGroupId string) {
			rf(consumer2.NewConfig(l)(brokers)("inventory_command")(inventory2.EnvCommandTopic)(consumerGroupId), consumer.SetHeaderParsers(consumer.SpanHeaderParser, consumer.TenantHeaderParser))
		}
	}
}

func InitHandlers(l logrus.FieldLogger) func(rf func(topic string, handler handler.Handler) (string, error)) {
	return func(rf func(topic string, handler handler.Handler) (string, error)) {
		t, err := topic.EnvProvider(l)(inventory2.EnvCommandTopic)()
		if err != nil || t == "" {
			l.WithError(err).Errorf("Unable to resolve topic for [%s], inventory command handlers not registered.", inventory2.EnvCommandTopic)
			return
		}
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleAddCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handlePickUpCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleRemoveCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleDropCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleMoveCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleSortCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleLoadTabCommand)))
		_, _ = rf(t, message.AdaptHandler(message.PersistentConfig(handleUpdateAmountCommand)))
	}
}

// submit hands c to the session owning the character. The command runs under
// the message's context so its span continues the producer's trace. Commands
// for characters without a session on this channel are dropped.
func submit(l logrus.FieldLogger, ctx context.Context, characterId uint32, c session.Command) {
	s, ok := session.GetRegistry().Get(tenant.MustFromContext(ctx), characterId)
	if !ok {
		l.Debugf("Character [%d] has no session, dropping command.", characterId)
		return
	}
	mctx := context.WithoutCancel(ctx)
	if err := s.Submit(func(p *inventory.Processor) { c(p.WithContext(mctx)) }); err != nil {
		l.WithError(err).Warnf("Unable to submit command for character [%d].", characterId)
	}
}

func makeItem(b inventory2.ItemBody) item.Model {
	return item.NewBuilder(b.Id, b.TemplateId, tab.Type(b.Tab)).
		SetSlot(b.Slot).
		SetAmount(b.Amount).
		SetSlotMax(b.SlotMax).
		SetData(b.Data).
		Build()
}

func handleAddCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.AddCommandBody]) {
	if c.Type != inventory2.CommandAdd {
		return
	}
	m := makeItem(c.Body.Item)
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.AddOrStackAndEmit(c.TransactionId, m, c.Body.MarkNew)
	})
}

func handlePickUpCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.PickUpCommandBody]) {
	if c.Type != inventory2.CommandPickUp {
		return
	}
	m := makeItem(c.Body.Item)
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.PickUpAndEmit(c.TransactionId, m, c.Body.MarkNew)
	})
}

func handleRemoveCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.RemoveCommandBody]) {
	if c.Type != inventory2.CommandRemove {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.RemoveByUidAndEmit(c.TransactionId, c.Body.Id)
	})
}

func handleDropCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.DropCommandBody]) {
	if c.Type != inventory2.CommandDrop {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.DropAndEmit(c.TransactionId, c.Body.Id, c.Body.Amount, c.Body.Bound)
	})
}

func handleMoveCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.MoveCommandBody]) {
	if c.Type != inventory2.CommandMove {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.MoveAndEmit(c.TransactionId, c.Body.Id, c.Body.Destination)
	})
}

func handleSortCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.SortCommandBody]) {
	if c.Type != inventory2.CommandSort {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.SortAndEmit(c.TransactionId, tab.Type(c.Body.Tab))
	})
}

func handleLoadTabCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.LoadTabCommandBody]) {
	if c.Type != inventory2.CommandLoadTab {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.LoadTabAndEmit(c.TransactionId, tab.Type(c.Body.Tab))
	})
}

func handleUpdateAmountCommand(l logrus.FieldLogger, ctx context.Context, c inventory2.Command[inventory2.UpdateAmountCommandBody]) {
	if c.Type != inventory2.CommandUpdateAmount {
		return
	}
	submit(l, ctx, c.CharacterId, func(p *inventory.Processor) {
		_ = p.UpdateAmountAndEmit(c.TransactionId, c.Body.Id, c.Body.Amount)
	})
}
