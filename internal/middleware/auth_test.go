package middleware

import (
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "testing"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/marketpulse/marketpulse-backend/internal/logger"
  "github.com/marketpulse/marketpulse-backend/internal/requestdata"
  "github.com/marketpulse/marketpulse-backend/internal/services"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

type stubUserRepo struct {
  users map[uuid.UUID]*types.User
}

func (r *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  for _, u := range users {
    r.users[u.ID] = u
  }
  return users, nil
}

func (r *stubUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
  var out []*types.User
  for _, id := range userIDs {
    if u, ok := r.users[id]; ok {
      out = append(out, u)
    }
  }
  return out, nil
}

func (r *stubUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
  var out []*types.User
  for _, u := range r.users {
    for _, email := range userEmails {
      if u.Email == email {
        out = append(out, u)
      }
    }
  }
  return out, nil
}

func (r *stubUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
  for _, u := range r.users {
    if u.Email == userEmail {
      return true, nil
    }
  }
  return false, nil
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, services.AuthService, uuid.UUID) {
  t.Helper()
  gin.SetMode(gin.TestMode)

  log, err := logger.New("test")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }
  userID := uuid.New()
  repo := &stubUserRepo{users: map[uuid.UUID]*types.User{
    userID: {ID: userID, Email: "alice@x.com"},
  }}
  authService := services.NewAuthService(nil, log, repo, "test-secret", time.Hour)

  router := gin.New()
  am := NewAuthMiddleware(log, authService)
  router.GET("/protected", am.RequireAuth(), func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil {
      c.JSON(http.StatusInternalServerError, gin.H{"error": "no request data"})
      return
    }
    c.JSON(http.StatusOK, gin.H{"user_id": rd.UserID.String()})
  })
  return router, authService, userID
}

func TestRequireAuthResolvesUser(t *testing.T) {
  router, authService, userID := newAuthTestRouter(t)

  token, err := authService.IssueToken(userID)
  if err != nil {
    t.Fatalf("IssueToken: %v", err)
  }

  req := httptest.NewRequest(http.MethodGet, "/protected", nil)
  req.Header.Set("Authorization", "Bearer "+token)
  w := httptest.NewRecorder()
  router.ServeHTTP(w, req)

  if w.Code != http.StatusOK {
    t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
  }
  var body struct {
    UserID string `json:"user_id"`
  }
  if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
    t.Fatalf("decode body: %v", err)
  }
  if body.UserID != userID.String() {
    t.Fatalf("expected user id %s, got %s", userID, body.UserID)
  }
}

func TestRequireAuthUniformRejection(t *testing.T) {
  router, authService, _ := newAuthTestRouter(t)

  deletedUserToken, err := authService.IssueToken(uuid.New())
  if err != nil {
    t.Fatalf("IssueToken: %v", err)
  }

  headers := map[string]string{
    "no header":     "",
    "not bearer":    "Basic abc",
    "garbage token": "Bearer garbage",
    "unknown user":  "Bearer " + deletedUserToken,
  }

  var bodies []string
  for name, header := range headers {
    req := httptest.NewRequest(http.MethodGet, "/protected", nil)
    if header != "" {
      req.Header.Set("Authorization", header)
    }
    w := httptest.NewRecorder()
    router.ServeHTTP(w, req)

    if w.Code != http.StatusUnauthorized {
      t.Fatalf("%s: expected 401, got %d", name, w.Code)
    }
    bodies = append(bodies, w.Body.String())
  }

  // every rejection carries the same body, no cause leaks through
  for i := 1; i < len(bodies); i++ {
    if bodies[i] != bodies[0] {
      t.Fatalf("rejection bodies differ: %q vs %q", bodies[0], bodies[i])
    }
  }
}
