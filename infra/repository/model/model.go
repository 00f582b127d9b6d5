// Package model holds the GORM models shared by the repositories.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	Name         string    `gorm:"not null;size:100"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Account represents an account record. BalanceCents is only changed by
// the ledger through an atomic increment.
type Account struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	User                User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name                string    `gorm:"not null;size:50"`
	Type                string    `gorm:"not null;size:20;default:OTHER"`
	Currency            string    `gorm:"type:varchar(3);not null"`
	BalanceCents        int64     `gorm:"not null;default:0"`
	OpeningBalanceCents int64     `gorm:"not null;default:0"`
	IsArchived          bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

// Category represents a category record. (user_id, name, type) is unique.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_user_name_type,priority:1"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name      string    `gorm:"not null;size:50;uniqueIndex:idx_categories_user_name_type,priority:2"`
	Type      string    `gorm:"not null;size:10;uniqueIndex:idx_categories_user_name_type,priority:3"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Transaction represents a ledger entry. AmountCents is always positive.
type Transaction struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_transactions_user_occurred,priority:1"`
	User        User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Account     Account    `gorm:"foreignKey:AccountID"`
	ToAccountID *uuid.UUID `gorm:"type:uuid;index"`
	ToAccount   *Account   `gorm:"foreignKey:ToAccountID;constraint:OnDelete:SET NULL"`
	CategoryID  *uuid.UUID `gorm:"type:uuid"`
	Category    *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Type        string     `gorm:"not null;size:10"`
	AmountCents int64      `gorm:"not null;check:chk_transactions_amount_positive,amount_cents > 0"`
	OccurredAt  time.Time  `gorm:"not null;index:idx_transactions_user_occurred,priority:2"`
	Description string     `gorm:"not null;size:200;default:''"`
	Tags        StringList `gorm:"type:text;not null"`
	Attachments StringList `gorm:"type:text;not null"`
	AIJobID     *string    `gorm:"column:ai_job_id;size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// RefreshToken represents a persisted refresh token. Rows are kept after
// revocation.
type RefreshToken struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash     string    `gorm:"not null"`
	IssuedAt      time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null"`
	RevokedAt     *time.Time
	RevokedReason string `gorm:"not null;size:20;default:''"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the RefreshToken model.
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// All lists every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{&User{}, &Account{}, &Category{}, &Transaction{}, &RefreshToken{}}
}
