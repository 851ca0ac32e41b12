package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	const doc = `{"status":"ok","count":3}`

	tests := []struct {
		name    string
		body    []byte
		want    payload
		wantErr bool
	}{
		{name: "plain json", body: []byte(doc), want: payload{Status: "ok", Count: 3}},
		{name: "gzip json", body: gzipped(t, doc), want: payload{Status: "ok", Count: 3}},
		{name: "empty body", body: nil, wantErr: true},
		{name: "broken json", body: []byte(`{"status":`), wantErr: true},
		{name: "truncated gzip", body: gzipped(t, doc)[:10], wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := Decode(bytes.NewReader(tt.body), &got)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientGetJSON(t *testing.T) {
	gzBody := gzipped(t, `{"status":"gzip","count":2}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		switch r.URL.Path {
		case "/plain":
			w.Write([]byte(`{"status":"plain","count":1}`))
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			w.Write(gzBody)
		case "/garbage":
			w.Header().Set("Content-Encoding", "gzip")
			w.Write([]byte("definitely not gzip"))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := New("test", time.Second)
	ctx := context.Background()

	var p payload
	require.NoError(t, c.GetJSON(ctx, srv.URL+"/plain", &p))
	assert.Equal(t, payload{Status: "plain", Count: 1}, p)

	require.NoError(t, c.GetJSON(ctx, srv.URL+"/gzip", &p))
	assert.Equal(t, payload{Status: "gzip", Count: 2}, p)

	err := c.GetJSON(ctx, srv.URL+"/garbage", &p)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr), "got %v", err)
	assert.Equal(t, "test", decErr.Upstream)

	err = c.GetJSON(ctx, srv.URL+"/missing", &p)
	var stErr *StatusError
	require.True(t, errors.As(err, &stErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, stErr.Code)
	assert.True(t, strings.HasPrefix(stErr.Body, "nope"))
}

func TestClientPostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in payload
		assert.NoError(t, Decode(r.Body, &in))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":%q,"count":%d}`, in.Status, in.Count+1)
	}))
	defer srv.Close()

	var out payload
	err := New("echo", time.Second).PostJSON(context.Background(), srv.URL, payload{Status: "hi", Count: 1}, &out)
	require.NoError(t, err)
	assert.Equal(t, payload{Status: "hi", Count: 2}, out)
}

func TestClientCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var p payload
	err := New("test", time.Second).GetJSON(ctx, srv.URL, &p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
