package item

import (
	"atlas-maple2/tab"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migration(db *gorm.DB) error {
	return db.AutoMigrate(&Entity{})
}

type Entity struct {
	TenantId    uuid.UUID `gorm:"not null"`
	Id          uint64    `gorm:"primaryKey;autoIncrement:false;not null"`
	CharacterId uint32    `gorm:"not null;index"`
	TemplateId  uint32    `gorm:"not null"`
	Tab         byte      `gorm:"not null"`
	Slot        int16     `gorm:"not null"`
	Amount      uint32    `gorm:"not null"`
	SlotMax     uint32    `gorm:"not null"`
	Data        []byte
}

func (e Entity) TableName() string {
	return "items"
}

func Make(e Entity) (Model, error) {
	return Model{
		id:         e.Id,
		templateId: e.TemplateId,
		tab:        tab.Type(e.Tab),
		slot:       e.Slot,
		amount:     e.Amount,
		slotMax:    e.SlotMax,
		data:       e.Data,
	}, nil
}

func MakeEntity(tenantId uuid.UUID, characterId uint32) func(m Model) (Entity, error) {
	return func(m Model) (Entity, error) {
		return Entity{
			TenantId:    tenantId,
			Id:          m.id,
			CharacterId: characterId,
			TemplateId:  m.templateId,
			Tab:         byte(m.tab),
			Slot:        m.slot,
			Amount:      m.amount,
			SlotMax:     m.slotMax,
			Data:        m.data,
		}, nil
	}
}
