package identity_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-loan-service/loan/config"
	"github.com/Astemirdum/library-loan-service/loan/internal/errs"
	"github.com/Astemirdum/library-loan-service/loan/internal/model"
	"github.com/Astemirdum/library-loan-service/loan/internal/service/identity"
)

func newClient(t *testing.T, h http.HandlerFunc) *identity.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	host, port, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	return identity.NewClient(zap.NewExample().Named("test"), config.IdentityHTTPServer{Host: host, Port: port}, time.Second)
}

func TestClient_Lookup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		code      int
		body      string
		want      model.UserSummary
		wantErr   error
		wantCalls int32
	}{
		{
			name:      "ok",
			code:      http.StatusOK,
			body:      `{"id":7,"name":"Ada","email":"ada@example.com"}`,
			want:      model.UserSummary{ID: 7, Name: "Ada", Email: "ada@example.com"},
			wantCalls: 1,
		},
		{
			name:      "not found",
			code:      http.StatusNotFound,
			body:      `{"message":"no user"}`,
			wantErr:   errs.ErrNotFound,
			wantCalls: 1,
		},
		{
			name:      "unavailable is retried",
			code:      http.StatusInternalServerError,
			body:      `boom`,
			wantErr:   errs.ErrRemoteUnavailable,
			wantCalls: 3,
		},
		{
			name:      "bad body",
			code:      http.StatusOK,
			body:      `{`,
			wantErr:   errs.ErrRemoteUnavailable,
			wantCalls: 3,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var calls int32
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				require.Equal(t, "/api/v1/users/7", r.URL.Path)
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})

			got, err := c.Lookup(context.Background(), 7)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_Exists(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/users/1" {
			_, _ = w.Write([]byte(`{"id":1,"name":"Ada"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ok, err := c.Exists(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.Exists(context.Background(), 2)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestClient_BreakerOpens(t *testing.T) {
	t.Parallel()
	var calls int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 20; i++ {
		_, err := c.Lookup(context.Background(), 1)
		require.True(t, errors.Is(err, errs.ErrRemoteUnavailable))
	}
	require.Less(t, atomic.LoadInt32(&calls), int32(60))
}
