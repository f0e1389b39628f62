package auth

import "context"

const (
	RoleSeller = "seller"

	roleClaim = "role"
)

// User is the signed-in identity as reported by the identity provider.
type User struct {
	ID             string         `json:"id"`
	Email          string         `json:"email,omitempty"`
	PublicMetadata map[string]any `json:"public_metadata,omitempty"`
}

// Role reads the role claim from the public metadata.
func (u *User) Role() string {
	if u == nil {
		return ""
	}
	role, _ := u.PublicMetadata[roleClaim].(string)
	return role
}

// Clone copies u and its top-level metadata map.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.PublicMetadata != nil {
		c.PublicMetadata = make(map[string]any, len(u.PublicMetadata))
		for k, v := range u.PublicMetadata {
			c.PublicMetadata[k] = v
		}
	}
	return &c
}

// IsSeller reports whether u carries the seller role. A nil user is never a
// seller.
func IsSeller(u *User) bool {
	return u != nil && u.Role() == RoleSeller
}

type ctxKey string

const userKey ctxKey = "auth_user"

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the user stored by WithUser, or nil when signed out.
func UserFrom(ctx context.Context) *User {
	u, _ := ctx.Value(userKey).(*User)
	return u
}
