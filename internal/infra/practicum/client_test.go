package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework_status_bot/internal/domain/homework"
)

func testLogger(buf *bytes.Buffer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(buf)
	return log
}

func TestFetchStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "OAuth secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1000", r.URL.Query().Get("from_date"))
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"hw1","status":"approved"}],"current_date":2000}`))
	}))
	defer server.Close()

	var logs bytes.Buffer
	client := NewClient(server.URL, "secret", testLogger(&logs), WithTimeout(5*time.Second))

	raw, err := client.FetchStatus(context.Background(), 1000)
	require.NoError(t, err)

	body, ok := raw.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("2000"), body["current_date"])
	assert.Len(t, body["homeworks"], 1)

	assert.Contains(t, logs.String(), "from_date=1000")
	assert.NotContains(t, logs.String(), "secret")
}

func TestFetchStatus_InvalidResponseCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger(&bytes.Buffer{}))

	raw, err := client.FetchStatus(context.Background(), 1000)
	assert.Nil(t, raw)
	require.ErrorIs(t, err, homework.ErrInvalidResponseCode)

	var codeErr *homework.InvalidResponseCodeError
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusInternalServerError, codeErr.StatusCode)
	assert.Equal(t, "Internal Server Error", codeErr.Reason)
	assert.Equal(t, `{"error":"internal"}`, codeErr.Body)
}

func TestFetchStatus_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, "secret", testLogger(&bytes.Buffer{}))

	_, err := client.FetchStatus(context.Background(), 42)
	require.ErrorIs(t, err, homework.ErrConnection)

	var connErr *homework.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, url, connErr.Endpoint)
	assert.Equal(t, "42", connErr.Params.Get("from_date"))
}

func TestFetchStatus_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "secret", testLogger(&bytes.Buffer{}), WithTimeout(50*time.Millisecond))

	_, err := client.FetchStatus(context.Background(), 1)
	assert.ErrorIs(t, err, homework.ErrConnection)
}

func TestFetchStatus_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger(&bytes.Buffer{}))

	_, err := client.FetchStatus(context.Background(), 1)
	assert.ErrorIs(t, err, homework.ErrType)
}

func TestFetchStatus_LongErrorPageFitsInFailureMessage(t *testing.T) {
	page := "<html><body>" + strings.Repeat("<p>502 Bad Gateway: upstream timed out</p>", 200) + "</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testLogger(&bytes.Buffer{}))

	_, err := client.FetchStatus(context.Background(), 1)
	require.ErrorIs(t, err, homework.ErrInvalidResponseCode)

	msg := homework.FailureMessage(err)
	assert.Less(t, len([]rune(msg)), 4096)
	assert.Contains(t, msg, "502")
}

func TestWithTimeout_DoesNotModifySharedClient(t *testing.T) {
	shared := &http.Client{Timeout: time.Minute}

	client := NewClient("https://example.test", "secret", testLogger(&bytes.Buffer{}),
		WithHTTPClient(shared), WithTimeout(5*time.Second))

	assert.Equal(t, time.Minute, shared.Timeout)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.NotSame(t, shared, client.httpClient)
}
