package item

import (
	model2 "atlas-maple2/model"
	"context"

	"github.com/Chronicle20/atlas-model/model"
	tenant "github.com/Chronicle20/atlas-tenant"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Processor struct {
	l                logrus.FieldLogger
	ctx              context.Context
	db               *gorm.DB
	t                tenant.Model
	GetByCharacterId func(characterId uint32) ([]Model, error)
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, db *gorm.DB) *Processor {
	p := &Processor{
		l:   l,
		ctx: ctx,
		db:  db,
		t:   tenant.MustFromContext(ctx),
	}
	p.GetByCharacterId = model2.CollapseProvider(p.ByCharacterIdProvider)
	return p
}

func (p *Processor) ByCharacterIdProvider(characterId uint32) model.Provider[[]Model] {
	return model.SliceMap(Make)(getByCharacterId(p.t.Id(), characterId)(p.db))(model.ParallelMap())
}

// ReplaceForCharacter stores ms as the complete item set of the character.
func (p *Processor) ReplaceForCharacter(characterId uint32, ms []Model) error {
	p.l.Debugf("Attempting to store [%d] items for character [%d].", len(ms), characterId)
	es, err := model.SliceMap(MakeEntity(p.t.Id(), characterId))(model.FixedProvider(ms))(model.ParallelMap())()
	if err != nil {
		return err
	}
	txErr := p.db.Transaction(func(tx *gorm.DB) error {
		return replaceForCharacter(tx, p.t.Id(), characterId, es)
	})
	if txErr != nil {
		p.l.WithError(txErr).Errorf("Unable to store items for character [%d].", characterId)
		return txErr
	}
	p.l.Debugf("Stored [%d] items for character [%d].", len(es), characterId)
	return nil
}
