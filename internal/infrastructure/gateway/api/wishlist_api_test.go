package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistGet_FailureMeansEmpty(t *testing.T) {
	server := authServer(t, http.StatusInternalServerError, "")
	wishlistAPI := NewWishlistAPI(newTestClient(server, "tok"))

	snap, err := wishlistAPI.Get(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, snap)
}

func TestWishlistGet_DecodesSnapshot(t *testing.T) {
	body := `{"wishlist":{"id":1,"userId":7},"items":[{"id":100,"wishlistId":1,"productId":9,"quantity":2}]}`
	server := authServer(t, http.StatusOK, body)
	wishlistAPI := NewWishlistAPI(newTestClient(server, "tok"))

	snap, err := wishlistAPI.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 100, snap.Items[0].ItemID)
	assert.Equal(t, 9, snap.Items[0].ProductID)
}

func TestWishlistVerbs_HitTheRightEndpoints(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]int
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: body})
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	wishlistAPI := NewWishlistAPI(newTestClient(server, "tok"))
	ctx := context.Background()

	require.NoError(t, wishlistAPI.Add(ctx, 9))
	require.NoError(t, wishlistAPI.Remove(ctx, 100))
	require.NoError(t, wishlistAPI.RemoveOne(ctx, 100))
	require.NoError(t, wishlistAPI.SetQuantity(ctx, 100, 4))
	require.NoError(t, wishlistAPI.Clear(ctx))

	require.Len(t, calls, 5)
	assert.Equal(t, call{"POST", "/wishlist/add", map[string]int{"productId": 9}}, calls[0])
	assert.Equal(t, call{"DELETE", "/wishlist/remove/100", nil}, calls[1])
	assert.Equal(t, call{"POST", "/wishlist/remove-one", map[string]int{"itemId": 100}}, calls[2])
	assert.Equal(t, call{"PUT", "/wishlist/item/100", map[string]int{"quantity": 4}}, calls[3])
	assert.Equal(t, call{"DELETE", "/wishlist/clear", nil}, calls[4])
}
