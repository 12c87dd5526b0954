package inventory_test

import (
	"atlas-maple2/inventory"
	"atlas-maple2/item"
	"atlas-maple2/tab"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func stack(id uint64, templateId uint32, t tab.Type, amount uint32, slotMax uint32) item.Model {
	return item.NewBuilder(id, templateId, t).SetAmount(amount).SetSlotMax(slotMax).Build()
}

// checkInvariants verifies the item index and the slot indexes agree.
func checkInvariants(t *testing.T, inv *inventory.Inventory) {
	t.Helper()
	count := 0
	for _, tt := range tab.Types {
		seen := make(map[int16]uint64)
		for _, m := range inv.Items(tt) {
			count++
			if m.Tab() != tt {
				t.Fatalf("Item [%d] listed in tab [%s] but carries tab [%s].", m.Id(), tt, m.Tab())
			}
			if m.Slot() < 0 {
				t.Fatalf("Item [%d] in negative slot [%d].", m.Id(), m.Slot())
			}
			if other, ok := seen[m.Slot()]; ok {
				t.Fatalf("Slot [%d] of tab [%s] held by both [%d] and [%d].", m.Slot(), tt, other, m.Id())
			}
			seen[m.Slot()] = m.Id()
			if m.Amount() < 1 || m.Amount() > m.SlotMax() {
				t.Fatalf("Item [%d] has amount [%d] outside 1..[%d].", m.Id(), m.Amount(), m.SlotMax())
			}
			g, ok := inv.Get(m.Id())
			if !ok || g.Slot() != m.Slot() || g.Tab() != m.Tab() {
				t.Fatalf("Item [%d] index disagrees with slot index.", m.Id())
			}
		}
	}
	if count != inv.Size() {
		t.Fatalf("Slot indexes hold [%d] items, item index holds [%d].", count, inv.Size())
	}
}

func TestAddAssignsLowestFreeSlot(t *testing.T) {
	inv := inventory.New(testLogger(), 4)

	for i := uint64(1); i <= 3; i++ {
		m, err := inv.Add(stack(i, 100, tab.TypeMisc, 1, 1))
		if err != nil {
			t.Fatalf("Unable to add item [%d]: %v", i, err)
		}
		if m.Slot() != int16(i-1) {
			t.Fatalf("Item [%d] placed at [%d], expected [%d].", i, m.Slot(), i-1)
		}
	}
	if _, err := inv.Remove(2); err != nil {
		t.Fatalf("Unable to remove item: %v", err)
	}
	m, err := inv.Add(stack(4, 100, tab.TypeMisc, 1, 1))
	if err != nil {
		t.Fatalf("Unable to add item: %v", err)
	}
	if m.Slot() != 1 {
		t.Fatalf("Expected freed slot [1] to be reused, got [%d].", m.Slot())
	}
	checkInvariants(t, inv)
}

func TestAddHonorsRequestedSlot(t *testing.T) {
	inv := inventory.New(testLogger(), 10)

	m, err := inv.Add(item.Clone(stack(1, 100, tab.TypeGear, 1, 1)).SetSlot(7).Build())
	if err != nil {
		t.Fatalf("Unable to add item: %v", err)
	}
	if m.Slot() != 7 {
		t.Fatalf("Expected requested slot [7], got [%d].", m.Slot())
	}

	m, err = inv.Add(item.Clone(stack(2, 100, tab.TypeGear, 1, 1)).SetSlot(7).Build())
	if err != nil {
		t.Fatalf("Unable to add item: %v", err)
	}
	if m.Slot() != 0 {
		t.Fatalf("Expected taken slot to fall back to [0], got [%d].", m.Slot())
	}
	checkInvariants(t, inv)
}

func TestAddFull(t *testing.T) {
	inv := inventory.New(testLogger(), 2)
	_, _ = inv.Add(stack(1, 100, tab.TypeMisc, 1, 1))
	_, _ = inv.Add(stack(2, 100, tab.TypeMisc, 1, 1))

	m, err := inv.Add(stack(3, 100, tab.TypeMisc, 1, 1))
	if !errors.Is(err, inventory.ErrInventoryFull) {
		t.Fatalf("Expected full inventory, got [%v].", err)
	}
	if m.Placed() {
		t.Fatalf("Rejected item should not be placed.")
	}
	if _, ok := inv.Get(3); ok {
		t.Fatalf("Rejected item should not be stored.")
	}

	// Other tabs are unaffected.
	if _, err = inv.Add(stack(4, 100, tab.TypeGear, 1, 1)); err != nil {
		t.Fatalf("Unable to add to other tab: %v", err)
	}
	checkInvariants(t, inv)
}

func TestAddRejectsInvalid(t *testing.T) {
	inv := inventory.New(testLogger(), 4)
	_, _ = inv.Add(stack(1, 100, tab.TypeMisc, 1, 1))

	tests := []struct {
		name string
		m    item.Model
		err  error
	}{
		{"duplicate", stack(1, 100, tab.TypeMisc, 1, 1), inventory.ErrDuplicateId},
		{"zero id", stack(0, 100, tab.TypeMisc, 1, 1), inventory.ErrInvalidId},
		{"unknown tab", stack(2, 100, tab.Type(8), 1, 1), inventory.ErrInvalidTab},
		{"zero amount", stack(3, 100, tab.TypeMisc, 0, 10), inventory.ErrInvalidAmount},
		{"over slot max", stack(4, 100, tab.TypeMisc, 11, 10), inventory.ErrInvalidAmount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := inv.Add(tc.m); !errors.Is(err, tc.err) {
				t.Fatalf("Expected [%v], got [%v].", tc.err, err)
			}
		})
	}
	if inv.Size() != 1 {
		t.Fatalf("Expected only the original item, found [%d].", inv.Size())
	}
}

func TestRemoveAmount(t *testing.T) {
	inv := inventory.New(testLogger(), 4)
	_, _ = inv.Add(stack(1, 100, tab.TypeConsumable, 10, 100))

	remaining, err := inv.RemoveAmount(1, 4)
	if err != nil {
		t.Fatalf("Unable to remove amount: %v", err)
	}
	if remaining != 6 {
		t.Fatalf("Expected [6] remaining, got [%d].", remaining)
	}
	if _, err = inv.RemoveAmount(1, 7); !errors.Is(err, inventory.ErrInvalidAmount) {
		t.Fatalf("Expected invalid amount, got [%v].", err)
	}
	if _, err = inv.RemoveAmount(1, 0); !errors.Is(err, inventory.ErrInvalidAmount) {
		t.Fatalf("Expected invalid amount, got [%v].", err)
	}
	if _, err = inv.RemoveAmount(2, 1); !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("Expected not found, got [%v].", err)
	}
	remaining, err = inv.RemoveAmount(1, 6)
	if err != nil || remaining != 0 {
		t.Fatalf("Expected stack to be emptied, got [%d] [%v].", remaining, err)
	}
	if _, ok := inv.Get(1); ok {
		t.Fatalf("Emptied stack should leave the inventory.")
	}
	checkInvariants(t, inv)
}

func TestRemoveThenAddRoundTrip(t *testing.T) {
	inv := inventory.New(testLogger(), 4)
	a, _ := inv.Add(stack(1, 100, tab.TypeMisc, 3, 10))

	r, err := inv.Remove(1)
	if err != nil {
		t.Fatalf("Unable to remove item: %v", err)
	}
	if r.Placed() {
		t.Fatalf("Removed item should be unplaced.")
	}
	if _, err = inv.Remove(1); !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("Expected not found, got [%v].", err)
	}
	b, err := inv.Add(r)
	if err != nil {
		t.Fatalf("Unable to re-add item: %v", err)
	}
	if b.Slot() != a.Slot() || b.Amount() != a.Amount() {
		t.Fatalf("Round trip changed item.")
	}
	checkInvariants(t, inv)
}

func TestReplaceKeepsPosition(t *testing.T) {
	inv := inventory.New(testLogger(), 4)
	_, _ = inv.Add(stack(1, 100, tab.TypeMisc, 1, 1))
	a, _ := inv.Add(stack(2, 200, tab.TypeMisc, 3, 10))

	r, err := inv.Replace(item.Clone(a).SetTab(tab.TypeGear).SetSlot(3).SetAmount(9).Build())
	if err != nil {
		t.Fatalf("Unable to replace item: %v", err)
	}
	if r.Tab() != tab.TypeMisc || r.Slot() != a.Slot() || r.Amount() != 9 {
		t.Fatalf("Replace should keep position and update amount.")
	}
	if _, err = inv.Replace(item.Clone(a).SetAmount(11).Build()); !errors.Is(err, inventory.ErrInvalidAmount) {
		t.Fatalf("Expected invalid amount, got [%v].", err)
	}
	if _, err = inv.Replace(stack(3, 100, tab.TypeMisc, 1, 1)); !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("Expected not found, got [%v].", err)
	}
	checkInvariants(t, inv)
}

func TestMoveSwap(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(item.Clone(stack(1, 100, tab.TypeGear, 1, 1)).SetSlot(3).Build())
	_, _ = inv.Add(item.Clone(stack(2, 200, tab.TypeGear, 1, 1)).SetSlot(7).Build())

	r, err := inv.Move(1, 7)
	if err != nil {
		t.Fatalf("Unable to move item: %v", err)
	}
	if !r.Bumped() || r.BumpedId() != 2 || r.SourceSlot() != 3 {
		t.Fatalf("Expected item [2] bumped to slot [3], got [%d] [%d].", r.BumpedId(), r.SourceSlot())
	}
	a, _ := inv.Get(1)
	b, _ := inv.Get(2)
	if a.Slot() != 7 || b.Slot() != 3 {
		t.Fatalf("Expected swap, got [%d] and [%d].", a.Slot(), b.Slot())
	}
	checkInvariants(t, inv)
}

func TestMoveIsTabLocal(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(item.Clone(stack(1, 100, tab.TypeGear, 1, 1)).SetSlot(3).Build())
	_, _ = inv.Add(item.Clone(stack(2, 200, tab.TypeMisc, 1, 1)).SetSlot(7).Build())

	r, err := inv.Move(1, 7)
	if err != nil {
		t.Fatalf("Unable to move item: %v", err)
	}
	if r.Bumped() {
		t.Fatalf("Item in another tab should not be bumped.")
	}
	b, _ := inv.Get(2)
	if b.Slot() != 7 || b.Tab() != tab.TypeMisc {
		t.Fatalf("Item in another tab was disturbed.")
	}
	checkInvariants(t, inv)
}

func TestMoveToEmptySlot(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(item.Clone(stack(1, 100, tab.TypeGear, 1, 1)).SetSlot(3).Build())

	r, err := inv.Move(1, 9)
	if err != nil {
		t.Fatalf("Unable to move item: %v", err)
	}
	if r.Bumped() || r.BumpedId() != inventory.NoItem || r.SourceSlot() != 3 {
		t.Fatalf("Expected no bump from slot [3].")
	}
	m, _ := inv.Get(1)
	if m.Slot() != 9 {
		t.Fatalf("Expected slot [9], got [%d].", m.Slot())
	}
	if _, err = inv.Move(9, 0); !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("Expected not found, got [%v].", err)
	}
	if _, err = inv.Move(1, -2); !errors.Is(err, inventory.ErrInvalidSlot) {
		t.Fatalf("Expected invalid slot, got [%v].", err)
	}
	checkInvariants(t, inv)
}

func TestSortByTemplate(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(stack(1, 50, tab.TypeConsumable, 1, 1))
	_, _ = inv.Add(stack(2, 10, tab.TypeConsumable, 1, 1))
	_, _ = inv.Add(stack(3, 30, tab.TypeConsumable, 1, 1))

	ms, err := inv.Sort(tab.TypeConsumable)
	if err != nil {
		t.Fatalf("Unable to sort: %v", err)
	}
	expected := []uint32{10, 30, 50}
	for i, templateId := range expected {
		m := inv.Items(tab.TypeConsumable)[i]
		if m.TemplateId() != templateId || m.Slot() != int16(i) || ms[i].Id() != m.Id() {
			t.Fatalf("Slot [%d] expected template [%d], got [%d].", i, templateId, m.TemplateId())
		}
	}
	checkInvariants(t, inv)
}

func TestSort(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(item.Clone(stack(1, 300, tab.TypeMisc, 1, 1)).SetSlot(0).Build())
	_, _ = inv.Add(item.Clone(stack(2, 100, tab.TypeMisc, 1, 1)).SetSlot(4).Build())
	_, _ = inv.Add(item.Clone(stack(3, 300, tab.TypeMisc, 1, 1)).SetSlot(2).Build())
	_, _ = inv.Add(item.Clone(stack(4, 200, tab.TypeMisc, 1, 1)).SetSlot(9).Build())
	_, _ = inv.Add(stack(5, 50, tab.TypeGear, 1, 1))

	ms, err := inv.Sort(tab.TypeMisc)
	if err != nil {
		t.Fatalf("Unable to sort: %v", err)
	}
	expected := []uint64{2, 4, 1, 3}
	if len(ms) != len(expected) {
		t.Fatalf("Expected [%d] items, got [%d].", len(expected), len(ms))
	}
	for i, id := range expected {
		if ms[i].Id() != id || ms[i].Slot() != int16(i) {
			t.Fatalf("Position [%d] expected item [%d], got [%d] at slot [%d].", i, id, ms[i].Id(), ms[i].Slot())
		}
	}

	again, _ := inv.Sort(tab.TypeMisc)
	for i := range again {
		if again[i].Id() != ms[i].Id() {
			t.Fatalf("Sorting twice changed the order.")
		}
	}
	if g, _ := inv.Get(5); g.Slot() != 0 {
		t.Fatalf("Sorting should not touch other tabs.")
	}
	if _, err = inv.Sort(tab.Type(14)); !errors.Is(err, inventory.ErrInvalidTab) {
		t.Fatalf("Expected invalid tab, got [%v].", err)
	}
	checkInvariants(t, inv)
}

func TestStackablesOrder(t *testing.T) {
	inv := inventory.New(testLogger(), 10)
	_, _ = inv.Add(item.Clone(stack(1, 100, tab.TypeConsumable, 5, 10)).SetSlot(3).Build())
	_, _ = inv.Add(item.Clone(stack(2, 100, tab.TypeConsumable, 10, 10)).SetSlot(0).Build())
	_, _ = inv.Add(item.Clone(stack(3, 100, tab.TypeConsumable, 1, 10)).SetSlot(1).Build())
	_, _ = inv.Add(stack(4, 200, tab.TypeConsumable, 1, 10))

	ms := inv.Stackables(100)
	if len(ms) != 2 || ms[0].Id() != 3 || ms[1].Id() != 1 {
		t.Fatalf("Expected stacks [3 1] with room, got [%d].", len(ms))
	}
}
