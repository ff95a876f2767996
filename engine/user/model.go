package user

import "time"

// DefaultRole is assigned when a create request omits the role.
const DefaultRole = "user"

// User is the single persisted entity of the service.
type User struct {
	ID        int64     `json:"id"         db:"id"`
	Username  string    `json:"username"   db:"username"`
	Email     string    `json:"email"      db:"email"`
	FullName  string    `json:"full_name"  db:"full_name"`
	Role      string    `json:"role"       db:"role"`
	IsActive  bool      `json:"is_active"  db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Stats aggregates counts over the whole users table.
type Stats struct {
	TotalUsers       int64            `json:"total_users"`
	ActiveUsers      int64            `json:"active_users"`
	InactiveUsers    int64            `json:"inactive_users"`
	RoleDistribution map[string]int64 `json:"role_distribution"`
}

// Columns lists the users table columns in serialization order.
var Columns = []string{
	"id",
	"username",
	"email",
	"full_name",
	"role",
	"is_active",
	"created_at",
	"updated_at",
}

// SampleUsers returns the rows inserted into an empty table on first boot.
func SampleUsers() []User {
	return []User{
		{Username: "admin", Email: "admin@example.com", FullName: "Administrator", Role: "admin", IsActive: true},
		{Username: "john_doe", Email: "john@example.com", FullName: "John Doe", Role: "user", IsActive: true},
		{Username: "jane_smith", Email: "jane@example.com", FullName: "Jane Smith", Role: "moderator", IsActive: true},
		{Username: "bob_wilson", Email: "bob@example.com", FullName: "Bob Wilson", Role: "user", IsActive: true},
		{Username: "alice_brown", Email: "alice@example.com", FullName: "Alice Brown", Role: "user", IsActive: true},
	}
}
