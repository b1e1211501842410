package repos

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/marketpulse/marketpulse-backend/internal/repos/testutil"
  "github.com/marketpulse/marketpulse-backend/internal/types"
)

func newTestUser(email string) *types.User {
  now := time.Now().UTC()
  return &types.User{
    ID:               uuid.New(),
    Email:            email,
    Password:         "hash",
    CompanyName:      "Acme",
    FullName:         "Alice Example",
    SubscriptionTier: types.DefaultSubscriptionTier,
    CreatedAt:        now,
    UpdatedAt:        now,
  }
}

func TestUserRepo(t *testing.T) {
  db := testutil.DB(t)
  tx := testutil.Tx(t, db)

  repo := NewUserRepo(db, testutil.Logger(t))
  ctx := context.Background()

  created, err := repo.Create(ctx, tx, []*types.User{newTestUser("userrepo@example.com")})
  if err != nil {
    t.Fatalf("Create: %v", err)
  }
  if len(created) != 1 {
    t.Fatalf("Create: expected 1 user, got %d", len(created))
  }

  gotByIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{created[0].ID})
  if err != nil {
    t.Fatalf("GetByIDs: %v", err)
  }
  if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
    t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
  }

  gotByEmails, err := repo.GetByEmails(ctx, tx, []string{created[0].Email})
  if err != nil {
    t.Fatalf("GetByEmails: %v", err)
  }
  if len(gotByEmails) != 1 || gotByEmails[0].Email != created[0].Email {
    t.Fatalf("GetByEmails: unexpected result: %+v", gotByEmails)
  }

  exists, err := repo.EmailExists(ctx, tx, created[0].Email)
  if err != nil {
    t.Fatalf("EmailExists: %v", err)
  }
  if !exists {
    t.Fatalf("EmailExists: expected true")
  }

  exists, err = repo.EmailExists(ctx, tx, "does-not-exist@example.com")
  if err != nil {
    t.Fatalf("EmailExists (missing): %v", err)
  }
  if exists {
    t.Fatalf("EmailExists (missing): expected false")
  }
}
