package domain

import "time"

type AuthTokenKind string

const (
	AuthTokenKindEmailVerification AuthTokenKind = "EMAIL_VERIFICATION"
	AuthTokenKindPasswordReset     AuthTokenKind = "PASSWORD_RESET"
)

// AuthToken is a single-use capability persisted in the store: it names
// its owner, expires, and is invalidated atomically on use.
type AuthToken struct {
	ID        int32         `json:"id"`
	UserID    int32         `json:"user_id"`
	Kind      AuthTokenKind `json:"kind"`
	Token     string        `json:"token"` // unique
	ExpiresOn time.Time     `json:"expires_on"`
	UsedOn    *time.Time    `json:"used_on,omitempty"`
	CreatedOn string        `json:"created_on"`
}
