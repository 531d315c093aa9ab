package models

import (
	"time"

	"github.com/google/uuid"
)

// File is a reference to a document hosted in the external drive. Only
// metadata lives here; URL and IconURL point back at the drive.
// FolderID nil means the file sits at root level.
type File struct {
	BaseModel
	UserEmail  string     `json:"-" gorm:"type:varchar(255);not null;index"`
	Name       string     `json:"name" gorm:"type:text;not null"`
	URL        string     `json:"url" gorm:"type:text;not null"`
	IconURL    string     `json:"iconUrl" gorm:"type:text"`
	MimeType   string     `json:"mimeType" gorm:"type:varchar(255)"`
	Starred    bool       `json:"starred" gorm:"not null;default:false;index"`
	FolderID   *uuid.UUID `json:"folderId" gorm:"type:uuid;index"`
	UploadedAt time.Time  `json:"uploadedAt" gorm:"not null;autoCreateTime"`
	LastEdited *time.Time `json:"lastEditedDate,omitempty"`

	Folder *Folder `json:"-" gorm:"foreignKey:FolderID"`
}

func (File) TableName() string {
	return "files"
}
