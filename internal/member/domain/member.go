package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the coarse permission level carried in access tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Status is the member lifecycle state. A member is created PREACTIVE on
// first login, becomes ACTIVE through an explicit activation call, and ends
// in DELETE when the account is removed. DELETE is terminal for
// authentication: the row stays for attribution but can never complete a
// login again.
type Status string

const (
	StatusPreactive Status = "PREACTIVE"
	StatusActive    Status = "ACTIVE"
	StatusDelete    Status = "DELETE"
)

// CanActivate reports whether the activation transition is allowed.
func (s Status) CanActivate() bool { return s == StatusPreactive }

// CanDelete reports whether the account-removal transition is allowed.
func (s Status) CanDelete() bool { return s == StatusActive }

// Provider tags the external identity provider a member signed up with.
type Provider string

const (
	ProviderKakao  Provider = "KAKAO"
	ProviderNaver  Provider = "NAVER"
	ProviderGoogle Provider = "GOOGLE"
)

// ErrUnknownProvider reports a provider tag outside the supported set.
var ErrUnknownProvider = errors.New("unsupported_provider")

// ParseProvider matches a route parameter against the fixed provider enum,
// case-insensitively.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToUpper(strings.TrimSpace(s))) {
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderNaver:
		return ProviderNaver, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	}
	return "", ErrUnknownProvider
}

// Username builds the provider-qualified internal username. It is globally
// unique and immutable once the member row exists.
func Username(p Provider, externalID string) string {
	return string(p) + " " + externalID
}

// Member is the internal account record.
type Member struct {
	ID         string
	Username   string // "<provider> <providerUserId>"
	Nickname   string // empty until activation
	Role       Role
	Status     Status
	SignUpType Provider
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
