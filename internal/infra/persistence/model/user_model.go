package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7 generated by the application.
type UserModel struct {
	ID           uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	Firstname    string                                `gorm:"type:varchar(50);not null"`
	Lastname     string                                `gorm:"type:varchar(50);not null"`
	Username     string                                `gorm:"type:varchar(30);not null;uniqueIndex:users_username_key"`
	Email        string                                `gorm:"type:varchar(255);not null;uniqueIndex:users_email_key"`
	PasswordHash string                                `gorm:"column:password_hash;type:text;not null"`
	Role         string                                `gorm:"type:varchar(20);not null;default:student"`
	Bio          string                                `gorm:"type:text;not null;default:''"`
	Title        string                                `gorm:"type:varchar(100);not null;default:''"`
	Experience   *int                                  `gorm:"type:integer"`
	SocialLinks  datatypes.JSONType[map[string]string] `gorm:"type:jsonb;not null;default:'{}'"`
	ProfileImage string                                `gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	EnrolledCourses []CourseModel `gorm:"many2many:user_enrolled_courses;joinForeignKey:UserID;joinReferences:CourseID"`
	CreatedCourses  []CourseModel `gorm:"many2many:user_created_courses;joinForeignKey:UserID;joinReferences:CourseID"`
	Wishlist        []CourseModel `gorm:"many2many:user_wishlist;joinForeignKey:UserID;joinReferences:CourseID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
