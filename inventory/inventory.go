package inventory

import (
	"atlas-maple2/item"
	"atlas-maple2/tab"
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound      = errors.New("item not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInventoryFull = errors.New("inventory full")
	ErrInvalidTab    = errors.New("invalid tab")
	ErrInvalidSlot   = errors.New("invalid slot")
	ErrInvalidId     = errors.New("invalid item id")
	ErrDuplicateId   = errors.New("duplicate item id")
)

// NoItem is reported as the bumped id when a move lands on an empty slot.
const NoItem = uint64(0)

type MoveResult struct {
	bumpedId   uint64
	sourceSlot int16
}

// BumpedId is the item now occupying the source slot, or NoItem.
func (r MoveResult) BumpedId() uint64 {
	return r.bumpedId
}

func (r MoveResult) SourceSlot() int16 {
	return r.sourceSlot
}

func (r MoveResult) Bumped() bool {
	return r.bumpedId != NoItem
}

// Inventory is the authoritative item set of one player. It is owned by a
// single session and performs no synchronization of its own.
type Inventory struct {
	l        logrus.FieldLogger
	capacity uint32
	items    map[uint64]item.Model
	slots    map[tab.Type]map[int16]uint64
}

func New(l logrus.FieldLogger, capacity uint32) *Inventory {
	if capacity > math.MaxInt16+1 {
		capacity = math.MaxInt16 + 1
	}
	slots := make(map[tab.Type]map[int16]uint64, len(tab.Types))
	for _, t := range tab.Types {
		slots[t] = make(map[int16]uint64)
	}
	return &Inventory{
		l:        l,
		capacity: capacity,
		items:    make(map[uint64]item.Model),
		slots:    slots,
	}
}

func (i *Inventory) Capacity() uint32 {
	return i.capacity
}

func (i *Inventory) Size() int {
	return len(i.items)
}

func (i *Inventory) Get(id uint64) (item.Model, bool) {
	m, ok := i.items[id]
	return m, ok
}

// Items returns the contents of a tab ordered by slot.
func (i *Inventory) Items(t tab.Type) []item.Model {
	slots, ok := i.slots[t]
	if !ok {
		return make([]item.Model, 0)
	}
	keys := make([]int16, 0, len(slots))
	for s := range slots {
		keys = append(keys, s)
	}
	slices.Sort(keys)

	results := make([]item.Model, 0, len(keys))
	for _, s := range keys {
		if m, ok := i.items[slots[s]]; ok {
			results = append(results, m)
		}
	}
	return results
}

// All returns every item, tab by tab in tab.Types order, each tab by slot.
func (i *Inventory) All() []item.Model {
	results := make([]item.Model, 0, len(i.items))
	for _, t := range tab.Types {
		results = append(results, i.Items(t)...)
	}
	return results
}

// Stackables returns the stacks of templateId which still have room, in All order.
func (i *Inventory) Stackables(templateId uint32) []item.Model {
	results := make([]item.Model, 0)
	for _, m := range i.All() {
		if m.TemplateId() == templateId && m.Room() > 0 {
			results = append(results, m)
		}
	}
	return results
}

// Validate reports whether m could be held by an inventory at all.
func Validate(m item.Model) error {
	if m.Id() == NoItem {
		return ErrInvalidId
	}
	if !tab.Valid(m.Tab()) {
		return ErrInvalidTab
	}
	if m.SlotMax() < 1 || m.Amount() < 1 || m.Amount() > m.SlotMax() {
		return ErrInvalidAmount
	}
	return nil
}

// Add places m at its requested slot when that slot is free, otherwise at the
// lowest free slot below capacity. The placed item is returned. When no slot
// is free the item is returned unplaced with ErrInventoryFull.
func (i *Inventory) Add(m item.Model) (item.Model, error) {
	if err := Validate(m); err != nil {
		return m, err
	}
	if _, ok := i.items[m.Id()]; ok {
		i.l.Warnf("Item [%d] is already part of the inventory.", m.Id())
		return m, ErrDuplicateId
	}

	slots := i.slots[m.Tab()]
	if m.Placed() {
		if _, taken := slots[m.Slot()]; !taken {
			i.put(m)
			return m, nil
		}
	}

	for s := uint32(0); s < i.capacity; s++ {
		slot := int16(s)
		if _, taken := slots[slot]; taken {
			continue
		}
		placed := item.Clone(m).SetSlot(slot).Build()
		i.put(placed)
		return placed, nil
	}
	return item.Clone(m).SetSlot(item.NoSlot).Build(), ErrInventoryFull
}

// Restore places a stored item back into the inventory. The stored slot is
// kept when it is free, whatever the capacity. Unplaced or colliding items go
// to the lowest free slot, past capacity if the tab is full, so nothing stored
// is lost.
func (i *Inventory) Restore(m item.Model) (item.Model, error) {
	if err := Validate(m); err != nil {
		return m, err
	}
	if _, ok := i.items[m.Id()]; ok {
		return m, ErrDuplicateId
	}

	slots := i.slots[m.Tab()]
	if m.Placed() {
		if _, taken := slots[m.Slot()]; !taken {
			i.put(m)
			return m, nil
		}
	}
	for s := 0; s <= math.MaxInt16; s++ {
		slot := int16(s)
		if _, taken := slots[slot]; taken {
			continue
		}
		placed := item.Clone(m).SetSlot(slot).Build()
		i.put(placed)
		return placed, nil
	}
	return item.Clone(m).SetSlot(item.NoSlot).Build(), ErrInventoryFull
}

// Remove takes the whole stack out of the inventory.
func (i *Inventory) Remove(id uint64) (item.Model, error) {
	m, ok := i.remove(id)
	if !ok {
		return item.Model{}, ErrNotFound
	}
	return item.Clone(m).SetSlot(item.NoSlot).Build(), nil
}

// RemoveAmount takes amount units off the stack and returns what remains. A
// result of zero means the stack left the inventory.
func (i *Inventory) RemoveAmount(id uint64, amount uint32) (uint32, error) {
	m, ok := i.items[id]
	if !ok {
		return 0, ErrNotFound
	}
	if amount == 0 || amount > m.Amount() {
		return 0, ErrInvalidAmount
	}
	if amount == m.Amount() {
		i.remove(id)
		return 0, nil
	}
	remaining := m.Amount() - amount
	i.items[id] = item.Clone(m).SetAmount(remaining).Build()
	return remaining, nil
}

// Replace swaps the stored value of an existing item. Tab and slot of the
// stored item are kept.
func (i *Inventory) Replace(m item.Model) (item.Model, error) {
	old, ok := i.items[m.Id()]
	if !ok {
		return item.Model{}, ErrNotFound
	}
	placed := item.Clone(m).SetTab(old.Tab()).SetSlot(old.Slot()).Build()
	if err := Validate(placed); err != nil {
		return old, err
	}
	i.items[placed.Id()] = placed
	return placed, nil
}

// Move puts the item at dst within its tab. An item already at dst trades
// places with it.
func (i *Inventory) Move(id uint64, dst int16) (MoveResult, error) {
	if dst < 0 {
		return MoveResult{}, ErrInvalidSlot
	}
	src, ok := i.remove(id)
	if !ok {
		return MoveResult{}, ErrNotFound
	}

	r := MoveResult{bumpedId: NoItem, sourceSlot: src.Slot()}
	if occupantId, ok := i.slots[src.Tab()][dst]; ok {
		occupant, _ := i.remove(occupantId)
		i.put(item.Clone(occupant).SetSlot(src.Slot()).Build())
		r.bumpedId = occupantId
	}
	i.put(item.Clone(src).SetSlot(dst).Build())
	return r, nil
}

// Sort orders a tab by template id, keeping the slot order of equal
// templates, and packs it into slots 0..n-1.
func (i *Inventory) Sort(t tab.Type) ([]item.Model, error) {
	if _, ok := i.slots[t]; !ok {
		return nil, ErrInvalidTab
	}
	ms := i.Items(t)
	slices.SortStableFunc(ms, func(a, b item.Model) int {
		return cmp.Compare(a.TemplateId(), b.TemplateId())
	})

	slots := make(map[int16]uint64, len(ms))
	for idx, m := range ms {
		placed := item.Clone(m).SetSlot(int16(idx)).Build()
		i.items[placed.Id()] = placed
		slots[placed.Slot()] = placed.Id()
		ms[idx] = placed
	}
	i.slots[t] = slots
	return ms, nil
}

// put requires m to carry its final tab and slot.
func (i *Inventory) put(m item.Model) {
	if _, ok := i.items[m.Id()]; ok {
		i.l.Warnf("Adding item [%d] which already exists.", m.Id())
	}
	slots := i.slots[m.Tab()]
	if other, ok := slots[m.Slot()]; ok && other != m.Id() {
		i.l.Warnf("Adding item [%d] to slot [%d] of tab [%s] already taken by [%d].", m.Id(), m.Slot(), m.Tab(), other)
	}
	i.items[m.Id()] = m
	slots[m.Slot()] = m.Id()
}

func (i *Inventory) remove(id uint64) (item.Model, bool) {
	m, ok := i.items[id]
	if !ok {
		return item.Model{}, false
	}
	delete(i.items, id)
	if slots, ok := i.slots[m.Tab()]; ok && slots[m.Slot()] == id {
		delete(slots, m.Slot())
	}
	return m, true
}
