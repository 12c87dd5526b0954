package inventory

import (
	"atlas-maple2/item"
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"
)

// Load rebuilds the inventory of a character from storage. Stored items keep
// their slot, including slots past capacity. Items are restored in tab then
// slot order with unplaced items last, so a conflicting or unplaced item falls
// back to the lowest free slot.
func Load(l logrus.FieldLogger, ip *item.Processor) func(characterId uint32, capacity uint32) (*Inventory, error) {
	return func(characterId uint32, capacity uint32) (*Inventory, error) {
		ms, err := ip.GetByCharacterId(characterId)
		if err != nil {
			l.WithError(err).Errorf("Unable to load items for character [%d].", characterId)
			return nil, err
		}
		slices.SortFunc(ms, func(a, b item.Model) int {
			if c := cmp.Compare(a.Tab(), b.Tab()); c != 0 {
				return c
			}
			if a.Placed() != b.Placed() {
				if a.Placed() {
					return -1
				}
				return 1
			}
			if c := cmp.Compare(a.Slot(), b.Slot()); c != 0 {
				return c
			}
			return cmp.Compare(a.Id(), b.Id())
		})

		inv := New(l, capacity)
		for _, m := range ms {
			if _, err = inv.Restore(m); err != nil {
				l.WithError(err).Warnf("Unable to restore item [%d] for character [%d].", m.Id(), characterId)
			}
		}
		l.Debugf("Loaded [%d] of [%d] stored items for character [%d].", inv.Size(), len(ms), characterId)
		return inv, nil
	}
}

// Save stores the current contents of the inventory, replacing what was stored before.
func Save(ip *item.Processor) func(characterId uint32, inv *Inventory) error {
	return func(characterId uint32, inv *Inventory) error {
		return ip.ReplaceForCharacter(characterId, inv.All())
	}
}
