package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// User is an admin-panel principal. Password holds the bcrypt hash and never
// leaves the persistence boundary.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:140"`
	Password  string    `gorm:"size:100" json:"-"`
	Name      string    `gorm:"size:140"`
	Role      UserRole  `gorm:"type:varchar(20);default:'ADMIN'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
