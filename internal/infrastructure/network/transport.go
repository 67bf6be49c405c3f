package network

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
)

// Transport wraps every outgoing request. Connectivity-class failures never
// reach the engines as raw errors: they become a synthetic 503 response and
// flip the monitor OFFLINE. Any response from the server, success or HTTP
// error, proves reachability and clears OFFLINE.
type Transport struct {
	Base    http.RoundTripper
	Monitor *Monitor
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		if !isConnectivityError(err) {
			return nil, err
		}
		t.Monitor.ReportFailure()
		return syntheticUnavailable(req), nil
	}

	t.Monitor.ReportSuccess()
	return resp, nil
}

// isConnectivityError reports whether err is an unreachable-host / IO
// failure as opposed to a caller cancellation.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// syntheticUnavailable builds the local stand-in response for an
// unreachable service.
func syntheticUnavailable(req *http.Request) *http.Response {
	body := []byte(`{"error":"service unavailable"}`)
	return &http.Response{
		Status:        "503 Service Unavailable",
		StatusCode:    http.StatusServiceUnavailable,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": []string{"application/json"}},
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// NewHealthProbe returns a Probe that issues GET <baseURL>/health with the
// given client. Any 2xx counts as reachable.
func NewHealthProbe(client *http.Client, baseURL string) Probe {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return errors.New("health probe: " + resp.Status)
		}
		return nil
	}
}
