package builderapi

import (
	"highlaunchpad/internal/domain/builder"

	"gorm.io/gorm"
)

func userPagesQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&builder.Page{}).
		Where("owner_type = ? AND user_id = ?", builder.OwnerUser, userID)
}

func templatePagesQuery(db *gorm.DB, templateID string) *gorm.DB {
	return db.Model(&builder.Page{}).
		Where("owner_type = ? AND template_id = ?", builder.OwnerSystem, templateID)
}

func orderedComponents(db *gorm.DB) *gorm.DB {
	return db.Order("sort_index ASC")
}
