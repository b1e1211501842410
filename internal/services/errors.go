package services

import (
  "errors"
)

// Error taxonomy. Handlers map these categories onto HTTP statuses; within
// a category callers cannot distinguish finer causes from the response
// shape alone.
var (
  // auth category, all surfaced as a uniform authorization failure
  ErrMissingToken   = errors.New("missing or malformed authorization header")
  ErrMalformedToken = errors.New("invalid token")
  ErrExpiredToken   = errors.New("token expired")
  ErrUserNotFound   = errors.New("user not found")

  // invalid credentials on login; same message for unknown email and wrong
  // password so there is no account-enumeration signal
  ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")

  // conflict on registration
  ErrEmailTaken = errors.New("Email déjà utilisé")

  // scoped lookups
  ErrNotFound = errors.New("not found")

  // validation failures, wrapped with a specific reason
  ErrInvalidInput = errors.New("invalid input")
)

func IsAuthError(err error) bool {
  return errors.Is(err, ErrMissingToken) ||
    errors.Is(err, ErrMalformedToken) ||
    errors.Is(err, ErrExpiredToken) ||
    errors.Is(err, ErrUserNotFound) ||
    errors.Is(err, ErrInvalidCredentials)
}
