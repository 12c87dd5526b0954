package session

import (
	"atlas-maple2/config"
	"atlas-maple2/inventory"
	"atlas-maple2/item"
	"atlas-maple2/kafka/producer"
	"context"
	"errors"

	"github.com/Chronicle20/atlas-constants/channel"
	"github.com/Chronicle20/atlas-constants/world"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoProducer       = errors.New("no producer configured")
	ErrInvalidCharacter = errors.New("invalid character id")
)

type Processor struct {
	l        logrus.FieldLogger
	ctx      context.Context
	db       *gorm.DB
	t        tenant.Model
	producer producer.Provider
	capacity uint32
	depth    int
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) *Processor {
	return &Processor{
		l:        l,
		ctx:      ctx,
		db:       db,
		t:        tenant.MustFromContext(ctx),
		capacity: config.DefaultInventoryCapacity,
		depth:    config.DefaultOutboundDepth,
	}
}

func (p *Processor) clone() *Processor {
	c := *p
	return &c
}

// WithProducer sets where session notifications are finally delivered.
func (p *Processor) WithProducer(pp producer.Provider) *Processor {
	c := p.clone()
	c.producer = pp
	return c
}

func (p *Processor) WithCapacity(capacity uint32) *Processor {
	c := p.clone()
	c.capacity = capacity
	return c
}

func (p *Processor) WithOutboundDepth(depth int) *Processor {
	c := p.clone()
	c.depth = depth
	return c
}

func (p *Processor) itemProcessor() *item.Processor {
	return item.NewProcessor(p.l, p.ctx, p.db)
}

func (p *Processor) GetByCharacterId(characterId uint32) (*Model, bool) {
	return GetRegistry().Get(p.t, characterId)
}

// Create loads the character's inventory and starts a session owning it. A
// character which already has a session keeps it.
func (p *Processor) Create(sessionId uuid.UUID, characterId uint32, worldId world.Id, channelId channel.Id) error {
	if p.producer == nil {
		return ErrNoProducer
	}
	if characterId == 0 {
		return ErrInvalidCharacter
	}
	if existing, ok := GetRegistry().Get(p.t, characterId); ok {
		p.l.Debugf("Character [%d] already has session [%s].", characterId, existing.Id())
		return nil
	}

	p.l.Debugf("Creating session [%s] for character [%d].", sessionId, characterId)
	inv, err := inventory.Load(p.l, p.itemProcessor())(characterId, p.capacity)
	if err != nil {
		return err
	}
	m := NewModel(p.l, p.ctx, sessionId, characterId, worldId, channelId, inv, p.producer, p.depth)
	if existing, added := GetRegistry().Add(m); !added {
		p.l.Debugf("Character [%d] already has session [%s].", characterId, existing.Id())
		return nil
	}
	m.Start()
	p.l.Infof("Session [%s] created for character [%d] holding [%d] items.", sessionId, characterId, inv.Size())
	return nil
}

// Destroy stops the session and writes its inventory back to storage. Events
// for a session which has since been replaced are ignored.
func (p *Processor) Destroy(sessionId uuid.UUID, characterId uint32) error {
	m, ok := GetRegistry().RemoveIf(p.t, characterId, sessionId)
	if m == nil {
		p.l.Debugf("No session for character [%d] to destroy.", characterId)
		return nil
	}
	if !ok {
		p.l.Debugf("Ignoring destroy of stale session [%s] for character [%d].", sessionId, characterId)
		return nil
	}
	return p.stop(m)
}

func (p *Processor) stop(m *Model) error {
	defer m.release()
	m.Stop()
	if err := inventory.Save(p.itemProcessor())(m.CharacterId(), m.Inventory()); err != nil {
		p.l.WithError(err).Errorf("Unable to save inventory of character [%d].", m.CharacterId())
		return err
	}
	p.l.Infof("Session [%s] destroyed for character [%d].", m.Id(), m.CharacterId())
	return nil
}

// Teardown stops every registered session, saving each inventory under its own tenant.
func Teardown(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) func() {
	return func() {
		for _, m := range GetRegistry().GetAll() {
			if _, ok := GetRegistry().RemoveIf(m.Tenant(), m.CharacterId(), m.Id()); !ok {
				continue
			}
			tctx := tenant.WithContext(ctx, m.Tenant())
			_ = NewProcessor(l, tctx, db).stop(m)
		}
	}
}
