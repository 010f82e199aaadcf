package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleCompany = "company"
	RoleAdmin   = "admin"
)

// User carries only what the monitoring overview needs; identity and session
// management live outside this service.
type User struct {
	gorm.Model
	ID    uuid.UUID `gorm:"primaryKey;"`
	Email string    `gorm:"uniqueIndex"`
	Role  string    `gorm:"not null;index"`
}
