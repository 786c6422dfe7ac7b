package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolfinder/history"
	"toolfinder/output"
	"toolfinder/sheet"
)

const testSheet = "Unique Code,Tool to Use,Location,Tool Manufacturing Date,Customer Name,Remarks\n" +
	`AB-12,"Drill, Press",Bay 3,2021-04-01,ACME,` + "\n" +
	"X1,Lathe\n"

type stubReader struct {
	mu      sync.Mutex
	payload string
	err     error
	calls   int
}

func (s *stubReader) Read(context.Context, string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.payload, s.err
}

func (s *stubReader) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memoryRecorder struct {
	mu      sync.Mutex
	entries []history.Entry
}

func (m *memoryRecorder) InsertLookup(_ context.Context, entry history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func newTestServer(t *testing.T, reader *stubReader, recorder Recorder) *httptest.Server {
	t.Helper()
	server, err := NewServer(Options{Reader: reader, Recorder: recorder})
	require.NoError(t, err)
	server.now = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }

	ts := httptest.NewServer(server)
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, rawURL string, out any) int {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestNewServer_RequiresReader(t *testing.T) {
	_, err := NewServer(Options{})
	require.Error(t, err)
}

func TestAPISearch_Found(t *testing.T) {
	reader := &stubReader{payload: testSheet}
	recorder := &memoryRecorder{}
	ts := newTestServer(t, reader, recorder)

	var body output.ResultView
	status := getJSON(t, ts.URL+"/api/search?q="+url.QueryEscape("ab-12!"), &body)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Found)
	assert.Equal(t, 1, body.Row)
	assert.Equal(t, []string{"Drill", "Press"}, body.Tools)
	require.NotNil(t, body.Location)
	assert.Equal(t, "Bay 3", *body.Location)
	require.NotNil(t, body.Remarks)
	assert.Equal(t, "", *body.Remarks)
	require.Len(t, body.Pairs, 6)
	assert.Equal(t, "N/A", body.Pairs[5].Value)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, history.OutcomeFound, recorder.entries[0].Outcome)
	assert.Equal(t, "sheet", recorder.entries[0].Source)
}

func TestAPISearch_ShortRowHasNullFields(t *testing.T) {
	ts := newTestServer(t, &stubReader{payload: testSheet}, nil)

	var body map[string]any
	status := getJSON(t, ts.URL+"/api/search?q=x1", &body)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["found"])
	assert.Nil(t, body["location"])
	assert.Nil(t, body["remarks"])
}

func TestAPISearch_NotFound(t *testing.T) {
	ts := newTestServer(t, &stubReader{payload: testSheet}, nil)

	var body output.ResultView
	status := getJSON(t, ts.URL+"/api/search?q=zz99", &body)

	require.Equal(t, http.StatusOK, status)
	assert.False(t, body.Found)
	assert.Empty(t, body.Tools)
	assert.NotNil(t, body.Tools)
}

func TestAPISearch_EmptyQuerySkipsFetch(t *testing.T) {
	reader := &stubReader{payload: testSheet}
	recorder := &memoryRecorder{}
	ts := newTestServer(t, reader, recorder)

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/search?q=%20%20", &body)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, msgEmptyQuery, body.Error)
	assert.Equal(t, 0, reader.callCount())
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, history.OutcomeEmptyQuery, recorder.entries[0].Outcome)
}

func TestAPISearch_SchemaError(t *testing.T) {
	ts := newTestServer(t, &stubReader{payload: "Unique Code,Location\nX1,Bay\n"}, nil)

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/search?q=x1", &body)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, msgSchema, body.Error)
	assert.Contains(t, body.Detail, "tool to use")
}

func TestAPISearch_TransportError(t *testing.T) {
	reader := &stubReader{err: &sheet.TransportError{URL: "https://example.invalid", Err: errors.New("dial tcp: no route")}}
	ts := newTestServer(t, reader, nil)

	var body errorResponse
	status := getJSON(t, ts.URL+"/api/search?q=x1", &body)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, msgFailed, body.Error)
}

func TestIndex_RendersPanels(t *testing.T) {
	ts := newTestServer(t, &stubReader{payload: testSheet}, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		contains   []string
		excludes   []string
	}{
		{
			name:       "empty form",
			path:       "/",
			wantStatus: http.StatusOK,
			contains:   []string{`name="q"`, "&copy; 2026"},
			excludes:   []string{"resultsTable", "noResults", "error-message\""},
		},
		{
			name:       "found",
			path:       "/?q=AB-12",
			wantStatus: http.StatusOK,
			contains:   []string{"Tool 1", "Drill", "Tool 2", "Press", "Date of Manufacturing", "2021-04-01", "N/A"},
		},
		{
			name:       "not found",
			path:       "/?q=nothing",
			wantStatus: http.StatusOK,
			contains:   []string{"No results found"},
		},
		{
			name:       "empty query banner",
			path:       "/?q=",
			wantStatus: http.StatusBadRequest,
			contains:   []string{msgEmptyQuery},
			excludes:   []string{"No results found"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tc.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			raw, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			text := string(raw)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			for _, want := range tc.contains {
				assert.Contains(t, text, want)
			}
			for _, unwanted := range tc.excludes {
				assert.NotContains(t, text, unwanted)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &stubReader{}, nil)

	var body map[string]string
	status := getJSON(t, ts.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPISearch_ConcurrentRequests(t *testing.T) {
	reader := &stubReader{payload: testSheet}
	recorder := &memoryRecorder{}
	ts := newTestServer(t, reader, recorder)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(ts.URL + "/api/search?q=x1")
			if err != nil {
				errs <- err
				return
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- errors.New(resp.Status)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 8, reader.callCount())
	assert.Len(t, recorder.entries, 8)
}
