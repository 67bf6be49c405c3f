// Package auth implements the sign-in, registration and sign-out flows.
package auth

import (
	"context"
	"fmt"

	"github.com/am24/brickshop/internal/app"
	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/application/service"
	"github.com/am24/brickshop/internal/domain/session"
)

// CredentialStore persists credentials across runs.
type CredentialStore interface {
	Load(sess *session.Session) error
	Save(sess *session.Session) error
	Delete() error
}

// UseCase drives the authentication lifecycle. Logout cascades into the
// sync engines so no stale per-user state survives a user switch.
type UseCase struct {
	api          output.AuthAPI
	sess         *session.Session
	store        CredentialStore
	cart         service.CartService
	wishlist     service.WishlistService
	coordinators []*service.ToggleCoordinator
}

func NewUseCase(
	api output.AuthAPI,
	sess *session.Session,
	store CredentialStore,
	cart service.CartService,
	wishlist service.WishlistService,
	coordinators ...*service.ToggleCoordinator,
) *UseCase {
	return &UseCase{
		api:          api,
		sess:         sess,
		store:        store,
		cart:         cart,
		wishlist:     wishlist,
		coordinators: coordinators,
	}
}

// Restore loads stored credentials into the session. A missing or
// unreadable credentials file leaves the session logged out but loaded.
func (u *UseCase) Restore() {
	if err := u.store.Load(u.sess); err != nil {
		app.GetLogger().Warn("restore session failed: %v", err)
	}
}

// Login exchanges credentials for a token, fetches the user profile and
// persists both.
func (u *UseCase) Login(ctx context.Context, email, password string) error {
	token, err := u.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	u.sess.SetToken(token)

	user, err := u.api.Me(ctx)
	if err != nil {
		app.GetLogger().Warn("fetch profile failed: %v", err)
	} else {
		u.sess.SetUser(*user)
	}
	u.sess.MarkLoaded()

	if err := u.store.Save(u.sess); err != nil {
		return fmt.Errorf("persist credentials failed: %w", err)
	}
	return nil
}

// Register creates an account and returns the new user id. It does not
// sign the user in.
func (u *UseCase) Register(ctx context.Context, username, email, password string) (int64, error) {
	return u.api.Register(ctx, username, email, password)
}

// Logout clears the session and every per-user cache: pending debounced
// toggles are cancelled, then the cart and wishlist local views are
// dropped, then stored credentials are deleted.
func (u *UseCase) Logout() error {
	for _, c := range u.coordinators {
		c.CancelAll()
	}
	u.sess.Clear()
	u.cart.ClearLocal()
	u.wishlist.ClearLocal()

	if err := u.store.Delete(); err != nil {
		return fmt.Errorf("delete credentials failed: %w", err)
	}
	return nil
}
