package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner   = "OWNER"
	RoleManager = "MANAGER"
	RoleCashier = "CASHIER"
	RoleAuditor = "AUDITOR"
)

// User representa un operador del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // OWNER, MANAGER, CASHIER, AUDITOR
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
