package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a marketplace account (cargo owner or carrier).
type User struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string         `gorm:"column:fullname;not null" json:"fullname"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash" json:"-"`
	GoogleID     *string        `gorm:"column:google_id;uniqueIndex" json:"-"`
	Role         string         `gorm:"column:role;not null;default:trader" json:"role"`
	Phone        string         `gorm:"column:phone;type:varchar(20)" json:"phone"`
	CompanyName  string         `gorm:"column:company_name" json:"company_name"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
