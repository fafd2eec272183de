package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homework_status_bot/internal/domain/homework"
)

type fakeFetcher struct {
	body    string
	err     error
	cursors []int64
}

func (f *fakeFetcher) FetchStatus(_ context.Context, cursor int64) (any, error) {
	f.cursors = append(f.cursors, cursor)
	if f.err != nil {
		return nil, f.err
	}
	dec := json.NewDecoder(strings.NewReader(f.body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func newService(fetcher StatusFetcher) *StatusService {
	log, _ := bufferLogger()
	return NewStatusService(fetcher, homework.DefaultVerdicts(), log)
}

func TestStatusService_Verdict(t *testing.T) {
	fetcher := &fakeFetcher{body: `{"homeworks":[{"homework_name":"hw1","status":"approved"},{"homework_name":"hw0","status":"rejected"}],"current_date":1000}`}

	outcome := newService(fetcher).Check(context.Background(), 500)

	assert.Equal(t, []int64{500}, fetcher.cursors)
	require.Equal(t, OutcomeVerdict, outcome.Kind)
	assert.Equal(t, `Status changed for "hw1". Reviewer liked the work!`, outcome.Message)
	assert.True(t, outcome.HasCurrentDate)
	assert.Equal(t, int64(1000), outcome.CurrentDate)
	assert.NoError(t, outcome.Err)
}

func TestStatusService_Empty(t *testing.T) {
	outcome := newService(&fakeFetcher{body: `{"homeworks":[],"current_date":1000}`}).Check(context.Background(), 1)

	assert.Equal(t, OutcomeEmpty, outcome.Kind)
	assert.Empty(t, outcome.Message)
	assert.Equal(t, int64(1000), outcome.CurrentDate)
	assert.NoError(t, outcome.Err)
}

func TestStatusService_Failures(t *testing.T) {
	tests := []struct {
		name    string
		fetcher *fakeFetcher
		kind    error
	}{
		{
			name:    "connection",
			fetcher: &fakeFetcher{err: &homework.ConnectionError{Endpoint: "https://example.test", Params: url.Values{}, Err: errors.New("dial tcp: no such host")}},
			kind:    homework.ErrConnection,
		},
		{
			name:    "response code",
			fetcher: &fakeFetcher{err: &homework.InvalidResponseCodeError{StatusCode: 500, Reason: "Internal Server Error"}},
			kind:    homework.ErrInvalidResponseCode,
		},
		{name: "missing homeworks", fetcher: &fakeFetcher{body: `{"current_date":1000}`}, kind: homework.ErrKey},
		{name: "homeworks not a list", fetcher: &fakeFetcher{body: `{"homeworks":"hw1"}`}, kind: homework.ErrType},
		{name: "unknown status", fetcher: &fakeFetcher{body: `{"homeworks":[{"homework_name":"hw1","status":"lost"}]}`}, kind: homework.ErrValue},
		{name: "missing name", fetcher: &fakeFetcher{body: `{"homeworks":[{"status":"approved"}]}`}, kind: homework.ErrKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := newService(tt.fetcher).Check(context.Background(), 1)

			require.Equal(t, OutcomeFailure, outcome.Kind)
			assert.ErrorIs(t, outcome.Err, tt.kind)
			assert.Equal(t, homework.FailureMessage(outcome.Err), outcome.Message)
			assert.False(t, outcome.HasCurrentDate)
		})
	}
}

func TestOutcomeKind_String(t *testing.T) {
	assert.Equal(t, "verdict", OutcomeVerdict.String())
	assert.Equal(t, "empty", OutcomeEmpty.String())
	assert.Equal(t, "failure", OutcomeFailure.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}
