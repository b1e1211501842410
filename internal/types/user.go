package types

import (
  "time"

  "github.com/google/uuid"
)

const DefaultSubscriptionTier = "free"

type User struct {
  ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Email            string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password         string    `gorm:"not null;column:password" json:"-"`
  CompanyName      string    `gorm:"not null;column:company_name" json:"company_name"`
  FullName         string    `gorm:"not null;column:full_name" json:"full_name"`
  SubscriptionTier string    `gorm:"not null;column:subscription_tier" json:"subscription_tier"`
  CreatedAt        time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
