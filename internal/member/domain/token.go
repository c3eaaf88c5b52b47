package domain

import "time"

// TokenPair is what a successful login returns: the short-lived access JWT
// and the long-lived refresh JWT whose validity is tracked server-side.
type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type,omitempty"` // typically "Bearer"
	ExpiresIn    time.Duration `json:"expires_in"`           // access token lifetime
}

// Principal is the authenticated identity attached to a request context by
// the authentication middleware.
type Principal struct {
	Member Member
	Role   Role
}

// IsAdmin reports whether the principal may perform admin-only operations.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
