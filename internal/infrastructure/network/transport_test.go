package network

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func blockedMonitor(t *testing.T) *Monitor {
	t.Helper()
	m := NewMonitor(func(ctx context.Context) error {
		return errors.New("unreachable")
	}, MonitorConfig{
		Attempts:     1,
		Interval:     time.Millisecond,
		ProbeTimeout: time.Millisecond,
		SettleDelay:  time.Millisecond,
	})
	t.Cleanup(m.Close)
	return m
}

func TestTransport_ConnectivityErrorBecomesSynthetic503(t *testing.T) {
	m := blockedMonitor(t)
	transport := &Transport{
		Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}),
		Monitor: m,
	}

	req := httptest.NewRequest(http.MethodGet, "http://service/products", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"service unavailable"}`, string(body))
	assert.Equal(t, ReachabilityOffline, m.State())
}

func TestTransport_ServerErrorStillProvesReachability(t *testing.T) {
	m := blockedMonitor(t)
	m.state.Store(int32(ReachabilityOffline))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{Monitor: m}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	// A 500 is still an answer from the service: reachability is proven.
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, ReachabilityConnected, m.State())
}

func TestTransport_CallerCancellationPassesThrough(t *testing.T) {
	m := blockedMonitor(t)
	transport := &Transport{
		Base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, context.Canceled
		}),
		Monitor: m,
	}

	req := httptest.NewRequest(http.MethodGet, "http://service/products", nil)
	_, err := transport.RoundTrip(req)

	// Cancellation is the caller's doing, not a connectivity signal.
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, ReachabilityConnected, m.State())
}

func TestIsConnectivityError(t *testing.T) {
	assert.False(t, isConnectivityError(context.Canceled))
	assert.True(t, isConnectivityError(&net.OpError{Op: "dial", Err: errors.New("refused")}))
	assert.True(t, isConnectivityError(io.EOF))
	assert.True(t, isConnectivityError(io.ErrUnexpectedEOF))
	assert.False(t, isConnectivityError(errors.New("some app error")))
}

func TestNewHealthProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	probe := NewHealthProbe(server.Client(), server.URL)
	assert.NoError(t, probe(context.Background()))

	broken := NewHealthProbe(server.Client(), server.URL+"/missing")
	assert.Error(t, broken(context.Background()))
}
