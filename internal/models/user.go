// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the task manager. Password, avatar bytes,
// and sessions never appear in JSON output; the struct's JSON form is the
// only representation ever sent to clients.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Age       int       `gorm:"default:0" json:"age"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Sessions  []Session `gorm:"foreignKey:UserID" json:"-"`
	Tasks     []Task    `gorm:"foreignKey:OwnerID" json:"-"`
}

// Session is one issued bearer token. Rows are the revocation ledger: a
// token whose signature verifies is still rejected once its row is gone.
// The autoincrement ID preserves issuance order.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}
