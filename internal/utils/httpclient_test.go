package utils

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_GetJSON(t *testing.T) {
	t.Run("plain body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"Avatar"}`))
		}))
		defer srv.Close()

		var out struct{ Name string }
		err := NewHTTPClient(time.Second).GetJSON(context.Background(), srv.URL, &out)
		require.NoError(t, err)
		assert.Equal(t, "Avatar", out.Name)
	})

	t.Run("gzip body", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"name":"Alien"}`))
		require.NoError(t, zw.Close())

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(buf.Bytes())
		}))
		defer srv.Close()

		var out struct{ Name string }
		err := NewHTTPClient(time.Second).GetJSON(context.Background(), srv.URL, &out)
		require.NoError(t, err)
		assert.Equal(t, "Alien", out.Name)
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		var out map[string]any
		err := NewHTTPClient(time.Second).GetJSON(context.Background(), srv.URL, &out)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	})

	t.Run("invalid json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		var out map[string]any
		err := NewHTTPClient(time.Second).GetJSON(context.Background(), srv.URL, &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "解析JSON失败")
	})
}
