package item

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// replaceForCharacter swaps the stored rows of a character for es. Callers are
// expected to run it inside a transaction.
func replaceForCharacter(db *gorm.DB, tenantId uuid.UUID, characterId uint32, es []Entity) error {
	err := db.Where("tenant_id = ? AND character_id = ?", tenantId, characterId).Delete(&Entity{}).Error
	if err != nil {
		return err
	}
	if len(es) == 0 {
		return nil
	}
	return db.Create(&es).Error
}
