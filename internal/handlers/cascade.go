package handlers

import (
	"context"

	"github.com/dataroom/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// deleteFolderRecursive removes a folder subtree depth-first: child folders
// first (post-order), then the files directly inside the folder, then the
// folder row itself. The cascade is sequential and not wrapped in a
// transaction; the first failing step aborts the remainder and earlier
// deletions stay deleted.
func deleteFolderRecursive(ctx context.Context, db *gorm.DB, email string, folderID uuid.UUID) error {
	var children []models.Folder
	if err := db.WithContext(ctx).
		Where("parent_folder_id = ? AND user_email = ?", folderID, email).
		Find(&children).Error; err != nil {
		return err
	}

	for _, child := range children {
		if err := deleteFolderRecursive(ctx, db, email, child.ID); err != nil {
			return err
		}
	}

	if err := db.WithContext(ctx).
		Where("folder_id = ? AND user_email = ?", folderID, email).
		Delete(&models.File{}).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).
		Where("id = ? AND user_email = ?", folderID, email).
		Delete(&models.Folder{}).Error
}
