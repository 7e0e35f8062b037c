// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name           string   `json:"name" gorm:"size:255;not null"`
	Email          string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string   `json:"-" gorm:"size:255;not null"`
	Phone          *string  `json:"phone" gorm:"size:20"`
	Role           UserRole `json:"role" gorm:"type:varchar(20);not null;index"`
	ProfilePicture *string  `json:"profile_picture" gorm:"size:512"`
	Active         bool     `json:"active" gorm:"default:true"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
