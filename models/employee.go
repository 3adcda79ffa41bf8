package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type Employee struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"unique;not null"`
	Password  []byte    `json:"-" gorm:"not null"`
	FullName  string    `json:"full_name" gorm:"not null"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Role      string    `json:"role" gorm:"type:VARCHAR(10);not null;default:staff"`
	CreatedAt time.Time `json:"created_at"`
}

func (employee *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	employee.Id = uuid.NewString()
	return
}

func (employee *Employee) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	employee.Password = hashedPassword
}

func (employee *Employee) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(employee.Password, []byte(password))
}

// ValidRole reports whether role is one of the enumerated employee roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStaff
}
