package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum for clinic staff
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RolePharmacist   Role = "pharmacist"
	RoleCashier      Role = "cashier"
	RoleRegistration Role = "registration"
)

// User represents a clinic employee account
type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FullName string `gorm:"size:255" json:"fullName"`
	Role     Role   `gorm:"size:20;not null" json:"role"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
