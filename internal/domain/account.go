package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleCompany Role = "company"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleCompany
}

// Account is the login identity shared by clients and companies. The unique
// index on email makes addresses global across both roles.
type Account struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"size:16;not null"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Account) TableName() string { return "accounts" }

// Client creates recipes, keeps favorites and claims offers.
type Client struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:120;not null"`
	Location     string    `json:"location,omitempty" gorm:"size:200"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (Client) TableName() string { return "clients" }

// Company publishes offers to prepare recipes.
type Company struct {
	ID           int64     `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Email        string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Name         string    `json:"name" gorm:"size:150;not null"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Location     string    `json:"location,omitempty" gorm:"size:200"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (Company) TableName() string { return "companies" }

// NormalizeEmail is the canonical form used for storage and uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
