package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

// Operator is a bakery staff member using the Telegram bot.
type Operator struct {
	ID         uuid.UUID
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (o Operator) IsAdmin() bool { return o.Role == RoleAdmin }

// DisplayName prefers the full name, then @username.
func (o Operator) DisplayName() string {
	name := o.FirstName
	if o.LastName != "" {
		if name != "" {
			name += " "
		}
		name += o.LastName
	}
	if name != "" {
		return name
	}
	if o.Username != "" {
		return "@" + o.Username
	}
	return "operator"
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}
