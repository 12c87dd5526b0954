package tab

import "fmt"

type Type byte

const (
	TypeGear         = Type(0)
	TypeOutfit       = Type(1)
	TypeMount        = Type(2)
	TypeCatalyst     = Type(3)
	TypeFishingMusic = Type(4)
	TypeQuest        = Type(5)
	TypeGemstone     = Type(6)
	TypeMisc         = Type(7)
	TypeLifeSkill    = Type(9)
	TypePets         = Type(10)
	TypeConsumable   = Type(11)
	TypeCurrency     = Type(12)
	TypeBadge        = Type(13)
	TypeLapenshard   = Type(15)
	TypeFragment     = Type(16)
)

// Types is the complete tab set. Slot indexes are built from this list, so the
// numbering gaps (8, 14) never receive storage.
var Types = []Type{
	TypeGear,
	TypeOutfit,
	TypeMount,
	TypeCatalyst,
	TypeFishingMusic,
	TypeQuest,
	TypeGemstone,
	TypeMisc,
	TypeLifeSkill,
	TypePets,
	TypeConsumable,
	TypeCurrency,
	TypeBadge,
	TypeLapenshard,
	TypeFragment,
}

var names = map[Type]string{
	TypeGear:         "GEAR",
	TypeOutfit:       "OUTFIT",
	TypeMount:        "MOUNT",
	TypeCatalyst:     "CATALYST",
	TypeFishingMusic: "FISHING_MUSIC",
	TypeQuest:        "QUEST",
	TypeGemstone:     "GEMSTONE",
	TypeMisc:         "MISC",
	TypeLifeSkill:    "LIFE_SKILL",
	TypePets:         "PETS",
	TypeConsumable:   "CONSUMABLE",
	TypeCurrency:     "CURRENCY",
	TypeBadge:        "BADGE",
	TypeLapenshard:   "LAPENSHARD",
	TypeFragment:     "FRAGMENT",
}

func Valid(t Type) bool {
	_, ok := names[t]
	return ok
}

func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("UNKNOWN(%d)", byte(t))
}

// FromName resolves a tab from its name, as used in REST paths.
func FromName(name string) (Type, bool) {
	for t, n := range names {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
