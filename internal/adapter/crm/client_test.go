package crm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscheid92/salespulse/internal/domain"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 5*time.Second)
	c.retryPolicy.MaxAttempts = 2
	c.retryPolicy.InitialBackoff = time.Millisecond
	return c
}

func TestFetchUsers_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"userName":"alice","territory":"North"}]`))
	}))
	defer srv.Close()

	users, err := newTestClient(srv.URL).FetchUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.User{{ID: 1, UserName: "alice", Territory: "North"}}, users)
}

func TestFetchCalls_PathAndShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/calls", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":100,"accountId":10,"callDate":"2024-01-01","callType":"Phone","callStatus":"Completed"}]`))
	}))
	defer srv.Close()

	calls, err := newTestClient(srv.URL).FetchCalls(context.Background())
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, 10, calls[0].AccountID)
	assert.Equal(t, domain.CallTypePhone, calls[0].CallType)
}

func TestFetch_EmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	emails, err := newTestClient(srv.URL).FetchEmails(context.Background())
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestFetch_Non2xxCarriesBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchAccounts(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, domain.ResourceAccounts, fetchErr.Resource)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestFetch_MalformedJSONIsFailure(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchUsers(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, 1, calls, "malformed body must not be retried")
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchCalls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).FetchUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryable_Classification(t *testing.T) {
	assert.True(t, retryable(&statusError{code: 500}))
	assert.True(t, retryable(&statusError{code: 503}))
	assert.False(t, retryable(&statusError{code: 404}))
	assert.False(t, retryable(&statusError{code: 400}))
	assert.True(t, retryable(context.DeadlineExceeded))
}
