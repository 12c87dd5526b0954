package item

import "atlas-maple2/tab"

// NoSlot marks an item which has not been placed in a tab.
const NoSlot = int16(-1)

// Model is one stack of a catalog item. It carries only passive position
// metadata; the owning inventory is the single source of truth for placement.
type Model struct {
	id         uint64
	templateId uint32
	tab        tab.Type
	slot       int16
	amount     uint32
	slotMax    uint32
	data       []byte
}

func (m Model) Id() uint64 {
	return m.id
}

func (m Model) TemplateId() uint32 {
	return m.templateId
}

func (m Model) Tab() tab.Type {
	return m.tab
}

func (m Model) Slot() int16 {
	return m.slot
}

func (m Model) Placed() bool {
	return m.slot >= 0
}

func (m Model) Amount() uint32 {
	return m.amount
}

func (m Model) SlotMax() uint32 {
	return m.slotMax
}

func (m Model) Stackable() bool {
	return m.slotMax > 1
}

// Room is how many more units the stack accepts before reaching SlotMax.
func (m Model) Room() uint32 {
	if m.amount >= m.slotMax {
		return 0
	}
	return m.slotMax - m.amount
}

// Data is the opaque category payload (hair style, appearance color, ...).
func (m Model) Data() []byte {
	return m.data
}

func Clone(m Model) *ModelBuilder {
	return &ModelBuilder{
		id:         m.id,
		templateId: m.templateId,
		tab:        m.tab,
		slot:       m.slot,
		amount:     m.amount,
		slotMax:    m.slotMax,
		data:       m.data,
	}
}

type ModelBuilder struct {
	id         uint64
	templateId uint32
	tab        tab.Type
	slot       int16
	amount     uint32
	slotMax    uint32
	data       []byte
}

func NewBuilder(id uint64, templateId uint32, t tab.Type) *ModelBuilder {
	return &ModelBuilder{
		id:         id,
		templateId: templateId,
		tab:        t,
		slot:       NoSlot,
		amount:     1,
		slotMax:    1,
	}
}

func (b *ModelBuilder) SetTab(t tab.Type) *ModelBuilder {
	b.tab = t
	return b
}

func (b *ModelBuilder) SetSlot(slot int16) *ModelBuilder {
	b.slot = slot
	return b
}

func (b *ModelBuilder) SetAmount(amount uint32) *ModelBuilder {
	b.amount = amount
	return b
}

func (b *ModelBuilder) SetSlotMax(slotMax uint32) *ModelBuilder {
	b.slotMax = slotMax
	return b
}

func (b *ModelBuilder) SetData(data []byte) *ModelBuilder {
	b.data = data
	return b
}

func (b *ModelBuilder) Build() Model {
	return Model{
		id:         b.id,
		templateId: b.templateId,
		tab:        b.tab,
		slot:       b.slot,
		amount:     b.amount,
		slotMax:    b.slotMax,
		data:       b.data,
	}
}
