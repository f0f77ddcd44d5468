package sqlite

import (
	"context"
	"fmt"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/auth"
)

// Seed creates the demo accounts when the store holds no users yet.
// Calling it on a non-empty store is a no-op, so it is safe to invoke on
// every start.
func (s *Store) Seed(ctx context.Context) error {
	count, err := s.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("seed skipped, users already present", "count", count)
		return nil
	}

	hasher := auth.NewPasswordHasher()
	accounts := []struct {
		email    string
		password string
		fullName string
	}{
		{"taha@inpt.com", "password123", "Taha BENMALEK"},
		{"test@helala.com", "password123", "Vamos HB07"},
	}

	for _, a := range accounts {
		hash, err := hasher.Hash(a.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := s.CreateUser(ctx, a.email, hash, a.fullName); err != nil {
			return fmt.Errorf("seed user %s: %w", a.email, err)
		}
		s.logger.Info("seeded demo account", "email", a.email)
	}
	return nil
}
