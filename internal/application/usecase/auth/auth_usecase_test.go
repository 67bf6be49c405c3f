package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/am24/brickshop/internal/application/service"
	"github.com/am24/brickshop/internal/domain/model/cart"
	"github.com/am24/brickshop/internal/domain/model/order"
	"github.com/am24/brickshop/internal/domain/model/wishlist"
	"github.com/am24/brickshop/internal/domain/session"
)

// Mock implementations

type mockAuthAPI struct {
	loginToken string
	loginErr   error
	user       *session.User
	meErr      error
	registerID int64
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	return m.loginToken, m.loginErr
}

func (m *mockAuthAPI) Register(ctx context.Context, username, email, password string) (int64, error) {
	return m.registerID, nil
}

func (m *mockAuthAPI) Me(ctx context.Context) (*session.User, error) {
	return m.user, m.meErr
}

type mockCredStore struct {
	saved     *session.Session
	deleted   bool
	loadErr   error
	saveErr   error
	deleteErr error
}

func (m *mockCredStore) Load(sess *session.Session) error {
	sess.MarkLoaded()
	return m.loadErr
}

func (m *mockCredStore) Save(sess *session.Session) error {
	m.saved = sess
	return m.saveErr
}

func (m *mockCredStore) Delete() error {
	m.deleted = true
	return m.deleteErr
}

type stubCartService struct {
	clearedLocal bool
}

func (s *stubCartService) Refresh(ctx context.Context) error { return nil }
func (s *stubCartService) Add(ctx context.Context, productID int) <-chan error {
	ch := make(chan error, 1)
	ch <- nil
	return ch
}
func (s *stubCartService) Toggle(ctx context.Context, productID int) error { return nil }
func (s *stubCartService) UpdateQuantity(ctx context.Context, productID, newQuantity int) error {
	return nil
}
func (s *stubCartService) RemoveCompletely(ctx context.Context, productID int) error { return nil }
func (s *stubCartService) Clear(ctx context.Context) error                           { return nil }
func (s *stubCartService) Checkout(ctx context.Context) (*order.Placed, error)       { return nil, nil }
func (s *stubCartService) ClearLocal()                                               { s.clearedLocal = true }
func (s *stubCartService) Snapshot() cart.State                                      { return cart.State{} }

type stubWishlistService struct {
	clearedLocal bool
}

func (s *stubWishlistService) Refresh(ctx context.Context) error { return nil }
func (s *stubWishlistService) Toggle(ctx context.Context, productID int) <-chan error {
	ch := make(chan error, 1)
	ch <- nil
	return ch
}
func (s *stubWishlistService) UpdateQuantity(ctx context.Context, productID, delta int) error {
	return nil
}
func (s *stubWishlistService) RemoveCompletely(ctx context.Context, productID int) error { return nil }
func (s *stubWishlistService) Clear(ctx context.Context) error                           { return nil }
func (s *stubWishlistService) LastFetchedItem(productID int) *wishlist.Item              { return nil }
func (s *stubWishlistService) ClearLocal()                                               { s.clearedLocal = true }
func (s *stubWishlistService) Snapshot() wishlist.State                                  { return wishlist.State{} }

func newTestUseCase(api *mockAuthAPI, store *mockCredStore) (*UseCase, *session.Session, *stubCartService, *stubWishlistService) {
	sess := session.New()
	cartSvc := &stubCartService{}
	wishSvc := &stubWishlistService{}
	coordinator := service.NewToggleCoordinator(time.Millisecond)
	uc := NewUseCase(api, sess, store, cartSvc, wishSvc, coordinator)
	return uc, sess, cartSvc, wishSvc
}

func TestLogin_StoresTokenAndProfile(t *testing.T) {
	api := &mockAuthAPI{
		loginToken: "tok-1",
		user:       &session.User{ID: 3, Username: "bob", Email: "bob@example.com"},
	}
	store := &mockCredStore{}
	uc, sess, _, _ := newTestUseCase(api, store)

	err := uc.Login(context.Background(), "bob@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-1", sess.Token())
	assert.Equal(t, "bob", sess.Username())
	assert.True(t, sess.LoggedIn())
	require.NotNil(t, store.saved)
}

func TestLogin_PropagatesAuthError(t *testing.T) {
	api := &mockAuthAPI{loginErr: errors.New("Incorrect password.")}
	store := &mockCredStore{}
	uc, sess, _, _ := newTestUseCase(api, store)

	err := uc.Login(context.Background(), "bob@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, sess.LoggedIn())
	assert.Nil(t, store.saved)
}

func TestLogin_ProfileFailureIsNotFatal(t *testing.T) {
	api := &mockAuthAPI{loginToken: "tok-1", meErr: errors.New("boom")}
	store := &mockCredStore{}
	uc, sess, _, _ := newTestUseCase(api, store)

	err := uc.Login(context.Background(), "bob@example.com", "secret")
	require.NoError(t, err)

	assert.True(t, sess.LoggedIn())
	assert.Empty(t, sess.Username())
}

func TestRegister_ReturnsNewID(t *testing.T) {
	api := &mockAuthAPI{registerID: 42}
	uc, sess, _, _ := newTestUseCase(api, &mockCredStore{})

	id, err := uc.Register(context.Background(), "bob", "bob@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.False(t, sess.LoggedIn())
}

func TestLogout_CascadesThroughEngines(t *testing.T) {
	api := &mockAuthAPI{loginToken: "tok-1", user: &session.User{ID: 3}}
	store := &mockCredStore{}
	uc, sess, cartSvc, wishSvc := newTestUseCase(api, store)

	require.NoError(t, uc.Login(context.Background(), "bob@example.com", "secret"))
	require.NoError(t, uc.Logout())

	assert.False(t, sess.LoggedIn())
	assert.True(t, sess.Loaded())
	assert.True(t, cartSvc.clearedLocal)
	assert.True(t, wishSvc.clearedLocal)
	assert.True(t, store.deleted)
}

func TestRestore_ToleratesStoreFailure(t *testing.T) {
	store := &mockCredStore{loadErr: errors.New("corrupt file")}
	uc, sess, _, _ := newTestUseCase(&mockAuthAPI{}, store)

	uc.Restore()
	assert.True(t, sess.Loaded())
	assert.False(t, sess.LoggedIn())
}
