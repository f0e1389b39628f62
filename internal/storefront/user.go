package storefront

import (
	"context"

	"quickcart/internal/auth"
)

// FetchUserData loads the profile shown to the shopper.
func (s *State) FetchUserData(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.userData = placeholderUserData
	ls, snap := s.commit()
	s.mu.Unlock()

	notify(ls, snap)
}

// SetUser records the identity provider's user. The seller flag is
// recomputed only when the identity changes; nil means signed out.
func (s *State) SetUser(u *auth.User) {
	s.mu.Lock()
	if sameIdentity(s.user, u) {
		s.mu.Unlock()
		return
	}
	s.user = u.Clone()
	s.isSeller = auth.IsSeller(u)
	ls, snap := s.commit()
	s.mu.Unlock()

	notify(ls, snap)
}

// SetSeller overrides the seller flag until the next identity change.
func (s *State) SetSeller(isSeller bool) {
	s.mu.Lock()
	if s.isSeller == isSeller {
		s.mu.Unlock()
		return
	}
	s.isSeller = isSeller
	ls, snap := s.commit()
	s.mu.Unlock()

	notify(ls, snap)
}

// User returns a copy of the signed-in user, nil when signed out.
func (s *State) User() *auth.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *State) IsSeller() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSeller
}

func (s *State) UserData() UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userData
}

// sameIdentity compares users by id and role so a role change on the same
// account is picked up.
func sameIdentity(a, b *auth.User) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID && a.Role() == b.Role()
}
