package authcore

import "context"

// UserRecord is the engine's read-only view of an account row. The external
// user store owns the record; the engine only consumes it and never mutates
// identity fields.
type UserRecord struct {
	UserID       string
	Email        string
	Nickname     string
	Name         string
	Birthdate    string
	PasswordHash string
}

// CreateUserInput carries the fields Register hands to the user store. The
// password arrives already hashed; plaintext never crosses this boundary.
type CreateUserInput struct {
	Email        string
	PasswordHash string
	Name         string
	Nickname     string
	Birthdate    string
}

// UserStore is the collaborator contract for account lookup and creation.
// Find methods return (nil, nil) when no record matches; a non-nil error means
// the backing store itself failed.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	FindByNickname(ctx context.Context, nickname string) (*UserRecord, error)
	Create(ctx context.Context, input CreateUserInput) (string, error)
}

// TokenPair is one access/refresh generation. The refresh token is single-use:
// presenting it to Refresh consumes it and yields the next pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is the successful Login response.
type LoginResult struct {
	UserID string
	TokenPair
}

// RegisterInput is the plaintext registration request handed to the Engine.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Nickname  string
	Birthdate string
}
