package models

import "time"

type User struct {
	BaseModel
	Email     string  `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string  `json:"name" gorm:"type:varchar(255)"`
	AvatarURL *string `json:"avatarURL,omitempty" gorm:"type:text"`

	// Last Google OAuth access token, handed to the browser picker via
	// /api/auth/session. Never serialized.
	AccessToken *string    `json:"-" gorm:"type:text"`
	TokenExpiry *time.Time `json:"-"`

	Folders []Folder `json:"-" gorm:"foreignKey:UserEmail;references:Email"`
	Files   []File   `json:"-" gorm:"foreignKey:UserEmail;references:Email"`
}
