package models

import (
	"time"
)

// User represents the users table
// DB: users
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"column:username;size:255;not null;uniqueIndex:users_username_key" json:"username"`
	Email        string     `gorm:"column:email;size:255;not null" json:"email"`
	LoginMethod  string     `gorm:"column:login_method;size:20;not null" json:"login_method"`
	Name         string     `gorm:"column:name;size:100;not null" json:"name"`
	ProfileImage string     `gorm:"column:profile_image;size:500;not null" json:"profile_image"`
	IsActive     bool       `gorm:"column:is_active;not null" json:"is_active"`
	IsStaff      bool       `gorm:"column:is_staff;not null" json:"is_staff"`
	DateJoined   time.Time  `gorm:"column:date_joined;not null" json:"date_joined"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	// Relations
	SocialAccounts []SocialAccount `gorm:"foreignKey:UserID" json:"social_accounts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// SocialAccount links a user to an OAuth identity (Google)
// DB: social_accounts
type SocialAccount struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"column:user_id;not null;index:idx_social_user" json:"user_id"`
	Provider       string    `gorm:"column:provider;size:20;not null;uniqueIndex:social_accounts_provider_key,priority:1" json:"provider"`
	ProviderUserID string    `gorm:"column:provider_user_id;size:255;not null;uniqueIndex:social_accounts_provider_key,priority:2" json:"provider_user_id"`
	Email          *string   `gorm:"column:email;size:255" json:"email,omitempty"`
	Name           *string   `gorm:"column:name;size:100" json:"name,omitempty"`
	ProfileImage   *string   `gorm:"column:profile_image;size:500" json:"profile_image,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null" json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
