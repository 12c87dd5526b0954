package inventory

import (
	"atlas-maple2/item"
	"atlas-maple2/kafka/message"
	inventory2 "atlas-maple2/kafka/message/inventory"
	"atlas-maple2/kafka/producer"
	"atlas-maple2/metrics"
	"atlas-maple2/tab"
	"context"
	"errors"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "atlas-maple2/inventory"

// Processor applies inventory commands for one character and buffers the
// client notifications describing each applied mutation.
type Processor struct {
	l           logrus.FieldLogger
	ctx         context.Context
	characterId uint32
	inventory   *Inventory
	producer    producer.Provider
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, characterId uint32, inventory *Inventory, pp producer.Provider) *Processor {
	return &Processor{
		l:           l,
		ctx:         ctx,
		characterId: characterId,
		inventory:   inventory,
		producer:    pp,
	}
}

// WithContext returns a processor over the same inventory whose work is
// attributed to ctx.
func (p *Processor) WithContext(ctx context.Context) *Processor {
	return &Processor{
		l:           p.l,
		ctx:         ctx,
		characterId: p.characterId,
		inventory:   p.inventory,
		producer:    p.producer,
	}
}

func (p *Processor) CharacterId() uint32 {
	return p.characterId
}

func (p *Processor) Inventory() *Inventory {
	return p.inventory
}

func (p *Processor) put(mb *message.Buffer, eventType string, provider model.Provider[[]kafka.Message]) error {
	metrics.RecordNotification(eventType)
	return mb.Put(inventory2.EnvEventTopicStatus, provider)
}

// emit runs f under a span and delivers what it buffered.
func (p *Processor) emit(operation string, f func(mb *message.Buffer) error) error {
	_, span := otel.Tracer(tracerName).Start(p.ctx, "inventory."+operation)
	defer span.End()
	span.SetAttributes(attribute.Int64("character.id", int64(p.characterId)))

	err := message.Emit(p.producer)(f)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInventoryFull):
		return "full"
	default:
		return "error"
	}
}

func record(operation string, err error) error {
	metrics.RecordOperation(operation, outcome(err))
	return err
}

// AddOrStack merges a stackable item into existing stacks of the same
// template, filling each to capacity before moving to the next, and inserts
// whatever remains as a new stack.
func (p *Processor) AddOrStack(mb *message.Buffer) func(transactionId uuid.UUID, m item.Model, markNew bool) error {
	return func(transactionId uuid.UUID, m item.Model, markNew bool) error {
		p.l.Debugf("Character [%d] attempting to add [%d] item(s) [%d].", p.characterId, m.Amount(), m.TemplateId())
		if err := Validate(m); err != nil {
			p.l.WithError(err).Warnf("Character [%d] unable to receive [%d] item(s) [%d].", p.characterId, m.Amount(), m.TemplateId())
			return record("add", err)
		}
		if m.Stackable() {
			for _, s := range p.inventory.Stackables(m.TemplateId()) {
				if m.Amount() > s.Room() {
					added := s.Room()
					filled, err := p.inventory.Replace(item.Clone(s).SetAmount(s.SlotMax()).Build())
					if err != nil {
						return record("add", err)
					}
					m = item.Clone(m).SetAmount(m.Amount() - added).Build()
					if err = p.put(mb, inventory2.StatusEventTypeUpdated, updatedEventStatusProvider(transactionId, p.characterId, filled.Id(), filled.Amount())); err != nil {
						return err
					}
					if markNew {
						if err = p.put(mb, inventory2.StatusEventTypeMarkedNew, markedNewEventStatusProvider(transactionId, p.characterId, filled.Id(), added)); err != nil {
							return err
						}
					}
					continue
				}

				merged, err := p.inventory.Replace(item.Clone(s).SetAmount(s.Amount() + m.Amount()).Build())
				if err != nil {
					return record("add", err)
				}
				if err = p.put(mb, inventory2.StatusEventTypeUpdated, updatedEventStatusProvider(transactionId, p.characterId, merged.Id(), merged.Amount())); err != nil {
					return err
				}
				if markNew {
					if err = p.put(mb, inventory2.StatusEventTypeMarkedNew, markedNewEventStatusProvider(transactionId, p.characterId, merged.Id(), m.Amount())); err != nil {
						return err
					}
				}
				p.l.Debugf("Character [%d] stacked [%d] item(s) [%d] onto [%d].", p.characterId, m.Amount(), m.TemplateId(), merged.Id())
				return record("add", nil)
			}
		}
		return record("add", p.insert(mb)(transactionId, m, markNew))
	}
}

func (p *Processor) insert(mb *message.Buffer) func(transactionId uuid.UUID, m item.Model, markNew bool) error {
	return func(transactionId uuid.UUID, m item.Model, markNew bool) error {
		a, err := p.inventory.Add(m)
		if err != nil {
			p.l.WithError(err).Warnf("Character [%d] unable to receive [%d] item(s) [%d].", p.characterId, m.Amount(), m.TemplateId())
			return err
		}
		if err = p.put(mb, inventory2.StatusEventTypeAdded, addedEventStatusProvider(transactionId, p.characterId, a)); err != nil {
			return err
		}
		if markNew {
			if err = p.put(mb, inventory2.StatusEventTypeMarkedNew, markedNewEventStatusProvider(transactionId, p.characterId, a.Id(), a.Amount())); err != nil {
				return err
			}
		}
		p.l.Debugf("Character [%d] received item [%d] in slot [%d] of tab [%s].", p.characterId, a.Id(), a.Slot(), a.Tab())
		return nil
	}
}

func (p *Processor) AddOrStackAndEmit(transactionId uuid.UUID, m item.Model, markNew bool) error {
	return p.emit("add_or_stack", func(mb *message.Buffer) error {
		return p.AddOrStack(mb)(transactionId, m, markNew)
	})
}

// PickUp places the item in a free slot without looking for stacks to merge with.
func (p *Processor) PickUp(mb *message.Buffer) func(transactionId uuid.UUID, m item.Model, markNew bool) error {
	return func(transactionId uuid.UUID, m item.Model, markNew bool) error {
		p.l.Debugf("Character [%d] attempting to pick up [%d] item(s) [%d].", p.characterId, m.Amount(), m.TemplateId())
		return record("pick_up", p.insert(mb)(transactionId, m, markNew))
	}
}

func (p *Processor) PickUpAndEmit(transactionId uuid.UUID, m item.Model, markNew bool) error {
	return p.emit("pick_up", func(mb *message.Buffer) error {
		return p.PickUp(mb)(transactionId, m, markNew)
	})
}

func (p *Processor) RemoveByUid(mb *message.Buffer) func(transactionId uuid.UUID, id uint64) error {
	return func(transactionId uuid.UUID, id uint64) error {
		p.l.Debugf("Character [%d] attempting to remove item [%d].", p.characterId, id)
		if _, err := p.inventory.Remove(id); err != nil {
			return record("remove", err)
		}
		return record("remove", p.put(mb, inventory2.StatusEventTypeRemoved, removedEventStatusProvider(transactionId, p.characterId, id)))
	}
}

func (p *Processor) RemoveByUidAndEmit(transactionId uuid.UUID, id uint64) error {
	return p.emit("remove", func(mb *message.Buffer) error {
		return p.RemoveByUid(mb)(transactionId, id)
	})
}

// Drop takes amount units of an item out of the inventory. Bound items can
// only leave as a whole stack. Placing the dropped item in the field is the
// map service's concern.
func (p *Processor) Drop(mb *message.Buffer) func(transactionId uuid.UUID, id uint64, amount uint32, bound bool) error {
	return func(transactionId uuid.UUID, id uint64, amount uint32, bound bool) error {
		p.l.Debugf("Character [%d] attempting to drop [%d] of item [%d].", p.characterId, amount, id)
		if bound {
			if _, err := p.inventory.Remove(id); err != nil {
				p.l.WithError(err).Debugf("Character [%d] unable to drop item [%d].", p.characterId, id)
				return record("drop", err)
			}
			return record("drop", p.put(mb, inventory2.StatusEventTypeRemoved, removedEventStatusProvider(transactionId, p.characterId, id)))
		}

		remaining, err := p.inventory.RemoveAmount(id, amount)
		if err != nil {
			p.l.WithError(err).Debugf("Character [%d] unable to drop [%d] of item [%d].", p.characterId, amount, id)
			return record("drop", err)
		}
		if remaining > 0 {
			return record("drop", p.put(mb, inventory2.StatusEventTypeUpdated, updatedEventStatusProvider(transactionId, p.characterId, id, remaining)))
		}
		return record("drop", p.put(mb, inventory2.StatusEventTypeRemoved, removedEventStatusProvider(transactionId, p.characterId, id)))
	}
}

func (p *Processor) DropAndEmit(transactionId uuid.UUID, id uint64, amount uint32, bound bool) error {
	return p.emit("drop", func(mb *message.Buffer) error {
		return p.Drop(mb)(transactionId, id, amount, bound)
	})
}

func (p *Processor) Move(mb *message.Buffer) func(transactionId uuid.UUID, id uint64, destination int16) error {
	return func(transactionId uuid.UUID, id uint64, destination int16) error {
		p.l.Debugf("Character [%d] attempting to move item [%d] to slot [%d].", p.characterId, id, destination)
		r, err := p.inventory.Move(id, destination)
		if err != nil {
			return record("move", err)
		}
		return record("move", p.put(mb, inventory2.StatusEventTypeMoved, movedEventStatusProvider(transactionId, p.characterId, r.BumpedId(), r.SourceSlot(), id, destination)))
	}
}

func (p *Processor) MoveAndEmit(transactionId uuid.UUID, id uint64, destination int16) error {
	return p.emit("move", func(mb *message.Buffer) error {
		return p.Move(mb)(transactionId, id, destination)
	})
}

func (p *Processor) Sort(mb *message.Buffer) func(transactionId uuid.UUID, t tab.Type) error {
	return func(transactionId uuid.UUID, t tab.Type) error {
		p.l.Debugf("Character [%d] attempting to sort tab [%s].", p.characterId, t)
		ms, err := p.inventory.Sort(t)
		if err != nil {
			return record("sort", err)
		}
		return record("sort", p.reload(mb)(transactionId, t, ms))
	}
}

func (p *Processor) SortAndEmit(transactionId uuid.UUID, t tab.Type) error {
	return p.emit("sort", func(mb *message.Buffer) error {
		return p.Sort(mb)(transactionId, t)
	})
}

// LoadTab resends the full contents of a tab.
func (p *Processor) LoadTab(mb *message.Buffer) func(transactionId uuid.UUID, t tab.Type) error {
	return func(transactionId uuid.UUID, t tab.Type) error {
		if !tab.Valid(t) {
			return ErrInvalidTab
		}
		return p.reload(mb)(transactionId, t, p.inventory.Items(t))
	}
}

func (p *Processor) LoadTabAndEmit(transactionId uuid.UUID, t tab.Type) error {
	return p.emit("load_tab", func(mb *message.Buffer) error {
		return p.LoadTab(mb)(transactionId, t)
	})
}

func (p *Processor) reload(mb *message.Buffer) func(transactionId uuid.UUID, t tab.Type, ms []item.Model) error {
	return func(transactionId uuid.UUID, t tab.Type, ms []item.Model) error {
		if err := p.put(mb, inventory2.StatusEventTypeTabReset, tabResetEventStatusProvider(transactionId, p.characterId, t)); err != nil {
			return err
		}
		return p.put(mb, inventory2.StatusEventTypeTabLoaded, tabLoadedEventStatusProvider(transactionId, p.characterId, t, ms))
	}
}

// UpdateAmount overwrites the amount of a stack. Amounts which together with
// the current amount reach the stack capacity set the stack to capacity.
func (p *Processor) UpdateAmount(mb *message.Buffer) func(transactionId uuid.UUID, id uint64, amount uint32) error {
	return func(transactionId uuid.UUID, id uint64, amount uint32) error {
		m, ok := p.inventory.Get(id)
		if !ok {
			p.l.Warnf("Character [%d] attempted to update amount of missing item [%d].", p.characterId, id)
			return record("update", ErrNotFound)
		}

		target := amount
		if uint64(m.Amount())+uint64(amount) >= uint64(m.SlotMax()) {
			target = m.SlotMax()
		}
		u, err := p.inventory.Replace(item.Clone(m).SetAmount(target).Build())
		if err != nil {
			return record("update", err)
		}
		return record("update", p.put(mb, inventory2.StatusEventTypeUpdated, updatedEventStatusProvider(transactionId, p.characterId, u.Id(), u.Amount())))
	}
}

func (p *Processor) UpdateAmountAndEmit(transactionId uuid.UUID, id uint64, amount uint32) error {
	return p.emit("update_amount", func(mb *message.Buffer) error {
		return p.UpdateAmount(mb)(transactionId, id, amount)
	})
}
