package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is a signed-in identity. There is at most one per process, mirrored
// into the key-value store so it survives a restart.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credential pairs a user with a bcrypt password hash. The demo table below
// is a test fixture standing in for a real credential backend, not a security
// primitive; the verifier interface in the service layer keeps it pluggable.
type Credential struct {
	User         User
	PasswordHash string
}

// SetPassword hashes and stores the credential's password.
func (c *Credential) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (c *Credential) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// DefaultCredentials builds the fixed demo credential table
// (admin/admin123, staff/staff123). Hashing happens here rather than in
// literals so the plaintext pairs stay visibly a fixture.
func DefaultCredentials() []Credential {
	creds := []Credential{
		{User: User{ID: "1", Username: "admin", Email: "admin@stock.com", Role: RoleAdmin, CreatedAt: time.Now()}},
		{User: User{ID: "2", Username: "staff", Email: "staff@stock.com", Role: RoleStaff, CreatedAt: time.Now()}},
	}
	passwords := []string{"admin123", "staff123"}
	for i := range creds {
		if err := creds[i].SetPassword(passwords[i]); err != nil {
			panic(err)
		}
	}
	return creds
}
