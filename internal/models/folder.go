package models

import "github.com/google/uuid"

// Folder is one organizational node. ParentFolderID nil means root level.
// Rows are scoped by UserEmail; every query must filter on it.
type Folder struct {
	BaseModel
	UserEmail      string     `json:"-" gorm:"type:varchar(255);not null;index"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	ParentFolderID *uuid.UUID `json:"parentFolderId" gorm:"type:uuid;index"`

	Parent *Folder `json:"-" gorm:"foreignKey:ParentFolderID"`
}

func (Folder) TableName() string {
	return "folders"
}
