package services

import (
  "context"
  "errors"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/normalization"
  "github.com/marketpulse/marketpulse-backend/internal/repos"
  "github.com/marketpulse/marketpulse-backend/internal/types"
  "github.com/marketpulse/marketpulse-backend/internal/utils"
)

type JWTClaims struct {
  jwt.RegisteredClaims
}

type AuthService interface {
  RegisterUser(ctx context.Context, user *types.User) (*types.User, string, error)
  LoginUser(ctx context.Context, email, password string) (*types.User, string, error)
  Authenticate(ctx context.Context, tokenString string) (*types.User, error)
  IssueToken(userID uuid.UUID) (string, error)
  ValidateToken(tokenString string) (uuid.UUID, error)
  GetAccessTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(
  db *gorm.DB,
  baseLog *logger.Logger,
  userRepo repos.UserRepo,
  jwtSecretKey string,
  accessTTL time.Duration,
) AuthService {
  serviceLog := baseLog.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) (*types.User, string, error) {
  utils.NormalizeUserFields(ctx, user)
  if vErr := utils.ValidateRegistration(user); vErr != nil {
    return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, vErr.Error())
  }

  // conflict check happens before hashing and before any token issuance
  emailExists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return nil, "", fmt.Errorf("Failed to check user email: %w", err)
  }
  if emailExists {
    return nil, "", ErrEmailTaken
  }

  if hErr := utils.HashPassword(ctx, as.log, user); hErr != nil {
    return nil, "", hErr
  }

  user.ID = uuid.New()
  user.SubscriptionTier = types.DefaultSubscriptionTier
  now := time.Now().UTC()
  user.CreatedAt = now
  user.UpdatedAt = now

  if _, cErr := as.userRepo.Create(ctx, nil, []*types.User{user}); cErr != nil {
    as.log.Error("RegisterUser failed", "error", cErr)
    return nil, "", fmt.Errorf("Failed to create user: %w", cErr)
  }

  token, tErr := as.IssueToken(user.ID)
  if tErr != nil {
    return nil, "", fmt.Errorf("Failed to issue token: %w", tErr)
  }
  return user, token, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (*types.User, string, error) {
  email = normalization.ParseInputString(email)
  if vErr := utils.ValidateLogin(email, password); vErr != nil {
    return nil, "", fmt.Errorf("%w: %s", ErrInvalidInput, vErr.Error())
  }

  users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
  if err != nil {
    return nil, "", fmt.Errorf("Error retrieving user by email: %w", err)
  }
  if len(users) == 0 {
    return nil, "", ErrInvalidCredentials
  }
  user := users[0]

  if !utils.VerifyPassword(password, user.Password) {
    return nil, "", ErrInvalidCredentials
  }

  token, tErr := as.IssueToken(user.ID)
  if tErr != nil {
    return nil, "", fmt.Errorf("Failed to issue token: %w", tErr)
  }
  return user, token, nil
}

// Authenticate resolves a bearer token to a live user record. Token
// validity and user existence are both required; the middleware flattens
// every failure here into one authorization error.
func (as *authService) Authenticate(ctx context.Context, tokenString string) (*types.User, error) {
  if tokenString == "" {
    return nil, ErrMissingToken
  }
  userID, err := as.ValidateToken(tokenString)
  if err != nil {
    return nil, err
  }
  users, uErr := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
  if uErr != nil {
    return nil, fmt.Errorf("Failed to load user for token: %w", uErr)
  }
  if len(users) == 0 {
    return nil, ErrUserNotFound
  }
  return users[0], nil
}

func (as *authService) IssueToken(userID uuid.UUID) (string, error) {
  now := time.Now()
  claims := JWTClaims{
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   userID.String(),
      ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(now),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) ValidateToken(tokenString string) (uuid.UUID, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    if errors.Is(err, jwt.ErrTokenExpired) {
      return uuid.Nil, ErrExpiredToken
    }
    return uuid.Nil, ErrMalformedToken
  }
  claims, ok := parsedToken.Claims.(*JWTClaims)
  if !ok || !parsedToken.Valid {
    return uuid.Nil, ErrMalformedToken
  }
  userID, pErr := uuid.Parse(claims.Subject)
  if pErr != nil {
    return uuid.Nil, ErrMalformedToken
  }
  return userID, nil
}

func (as *authService) GetAccessTTL() time.Duration {
  return as.accessTTL
}
