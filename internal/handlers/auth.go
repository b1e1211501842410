package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/requestdata"
  "github.com/marketpulse/marketpulse-backend/internal/services"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

type AuthHandler struct {
  log         *logger.Logger
  authService services.AuthService
  userService services.UserService
}

func NewAuthHandler(log *logger.Logger, authService services.AuthService, userService services.UserService) *AuthHandler {
  return &AuthHandler{
    log:         log.With("handler", "AuthHandler"),
    authService: authService,
    userService: userService,
  }
}

type userPayload struct {
  ID               uuid.UUID `json:"id"`
  Email            string    `json:"email"`
  CompanyName      string    `json:"company_name"`
  FullName         string    `json:"full_name"`
  SubscriptionTier string    `json:"subscription_tier"`
  CreatedAt        string    `json:"created_at"`
}

func toUserPayload(u *types.User) userPayload {
  return userPayload{
    ID:               u.ID,
    Email:            u.Email,
    CompanyName:      u.CompanyName,
    FullName:         u.FullName,
    SubscriptionTier: u.SubscriptionTier,
    CreatedAt:        u.CreatedAt.Format(timeLayout),
  }
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email       string `json:"email"`
    Password    string `json:"password"`
    CompanyName string `json:"company_name"`
    FullName    string `json:"full_name"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  user := types.User{
    Email:       req.Email,
    Password:    req.Password,
    CompanyName: req.CompanyName,
    FullName:    req.FullName,
  }
  created, accessToken, err := ah.authService.RegisterUser(c.Request.Context(), &user)
  if err != nil {
    RespondServiceError(c, "register_failed", err)
    return
  }
  RespondOK(c, gin.H{
    "access_token": accessToken,
    "token_type":   "bearer",
    "user":         toUserPayload(created),
  })
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
    return
  }
  user, accessToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondServiceError(c, "login_failed", err)
    return
  }
  RespondOK(c, gin.H{
    "access_token": accessToken,
    "token_type":   "bearer",
    "user":         toUserPayload(user),
  })
}

func (ah *AuthHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  user, err := ah.userService.GetByID(c.Request.Context(), rd.UserID)
  if err != nil {
    ah.log.Error("GetMe failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, "load_user_failed", err)
    return
  }
  RespondOK(c, toUserPayload(user))
}
