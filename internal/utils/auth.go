package utils

import (
  "context"
  "fmt"

  "golang.org/x/crypto/bcrypt"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/normalization"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

// HashPassword replaces user.Password with its bcrypt hash. The salt and
// cost factor are embedded in the hash string itself.
func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// Any failure, including a malformed hash string, is a non-match.
func VerifyPassword(plaintext, hash string) bool {
  return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.CompanyName = normalization.ParseInputString(user.CompanyName)
  user.FullName = normalization.ParseInputString(user.FullName)
}

func ValidateRegistration(user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with registration")
  }
  if user.Email == "" {
    return fmt.Errorf("An email is required to register")
  }
  if user.Password == "" {
    return fmt.Errorf("A password is required to register")
  }
  if user.CompanyName == "" {
    return fmt.Errorf("A company name is required to register")
  }
  if user.FullName == "" {
    return fmt.Errorf("A full name is required to register")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return fmt.Errorf("Email is required to login")
  }
  if password == "" {
    return fmt.Errorf("Password is required to login")
  }
  return nil
}
