package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/am24/brickshop/internal/domain/model/order"
)

func TestOrderCreate_SendsIdempotencyKey(t *testing.T) {
	var keys []string
	var gotBody createOrderRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":5,"message":"created"}`))
	}))
	defer server.Close()

	orderAPI := NewOrderAPI(newTestClient(server, "tok"))
	items := []order.LineItem{{ProductID: 1, Quantity: 2}}

	placed, err := orderAPI.Create(context.Background(), items, 19.98)
	require.NoError(t, err)
	assert.Equal(t, 5, placed.ID)
	assert.Equal(t, items, gotBody.Items)
	assert.Equal(t, 19.98, gotBody.TotalPrice)

	_, err = orderAPI.Create(context.Background(), items, 19.98)
	require.NoError(t, err)

	// Every submit carries its own key.
	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestOrderListMine(t *testing.T) {
	body := `{"page":1,"limit":10,"total":1,"data":[{"id":5,"userId":7,"status":"pending","totalPrice":19.98}]}`
	server := authServer(t, http.StatusOK, body)
	orderAPI := NewOrderAPI(newTestClient(server, "tok"))

	page, err := orderAPI.ListMine(context.Background())
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "pending", page.Data[0].Status)
}

func TestOrderGet_NotFound(t *testing.T) {
	server := authServer(t, http.StatusNotFound, `{"error":"Order not found"}`)
	orderAPI := NewOrderAPI(newTestClient(server, "tok"))

	_, err := orderAPI.Get(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}
