// AngelaMos | 2026
// entity.go

package profile

import (
	"time"

	"github.com/carterperez-dev/foodhall/internal/core"
)

type Profile struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Phone        string     `db:"phone"`
	Role         string     `db:"role"`
	IsActive     bool       `db:"is_active"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (p *Profile) IsDeleted() bool {
	return p.DeletedAt != nil
}

func (p *Profile) IsAdmin() bool {
	return p.Role == core.RoleAdmin
}

func (p *Profile) Status() string {
	if p.IsActive {
		return StatusActive
	}
	return StatusInactive
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
