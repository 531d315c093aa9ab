package services

import (
	"context"

	"github.com/dataroom/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollisionService gates mutating operations that would produce two sibling
// rows with the same name: file renames and bulk inserts check
// (name, mimeType, folderId), folder renames check (name, parentFolderId).
// All checks are scoped to one owner. A nil folder reference is compared
// with IS NULL, never with equality.
type CollisionService struct {
	DB *gorm.DB
}

func NewCollisionService(db *gorm.DB) *CollisionService {
	return &CollisionService{DB: db}
}

// FileExists reports whether another file with the same (name, mimeType)
// already sits in the same folder. excludeID skips the row being renamed.
func (s *CollisionService) FileExists(ctx context.Context, email, name, mimeType string, folderID *uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := s.DB.WithContext(ctx).Model(&models.File{}).
		Where("user_email = ? AND name = ? AND mime_type = ?", email, name, mimeType)

	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FolderExists reports whether another folder with the same name already
// sits under the same parent.
func (s *CollisionService) FolderExists(ctx context.Context, email, name string, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error) {
	query := s.DB.WithContext(ctx).Model(&models.Folder{}).
		Where("user_email = ? AND name = ?", email, name)

	if parentID == nil {
		query = query.Where("parent_folder_id IS NULL")
	} else {
		query = query.Where("parent_folder_id = ?", *parentID)
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
