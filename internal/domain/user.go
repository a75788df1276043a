package domain

// Role distinguishes administrators from ordinary customers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// User represents a provisioned account. Accounts are created by seed
// or migration tooling and are immutable at runtime.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// IsAdmin reports whether the user may manage order fulfillment.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
