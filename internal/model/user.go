package model

import "time"

// Roles accepted by the editor API.  ADMIN manages every room; OPERATOR
// designs layouts.  CUSTOMER accounts exist in the shared users table but
// cannot reach editor routes.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleCustomer = "CUSTOMER"
)

// User represents an application user record as stored in the `users`
// table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – ADMIN, OPERATOR or CUSTOMER.
//  IsActive     – whether the account may log in.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
