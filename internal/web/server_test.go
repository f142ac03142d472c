package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clawboard/internal/derive"
	"clawboard/internal/gateway"
	"clawboard/internal/logstore"
	"clawboard/internal/model"
	"clawboard/internal/poller"
	"clawboard/internal/roster"
	"clawboard/internal/taskstore"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	tasks, err := taskstore.NewSQLiteStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { tasks.Close() })

	logs := logstore.NewMemoryStore()
	p := poller.New(gateway.NewMockSource(), logs, poller.Config{}, nil, nil)
	p.Refresh(context.Background())

	s := NewServer(p, tasks, logs, nil, nil, 0)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestAgentsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Agents    []model.AgentStatus `json:"agents"`
		Connected bool                `json:"connected"`
	}
	resp := getJSON(t, ts.URL+"/api/agents", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Connected)
	require.Len(t, body.Agents, len(roster.All()))
	assert.Equal(t, "zoe", body.Agents[0].ID)
}

func TestActivityEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var result derive.Result
	resp := getJSON(t, ts.URL+"/api/activity", &result)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result.Entries)
	assert.Equal(t, len(result.Entries), result.DisplayedCount)

	var local derive.Result
	getJSON(t, ts.URL+"/api/activity?source=local", &local)
	assert.Equal(t, 8, local.TotalCount)

	resp = getJSON(t, ts.URL+"/api/activity?source=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActivitySeesFreshLocalWrites(t *testing.T) {
	s, ts := newTestServer(t)

	// a write after the poll tick is visible immediately
	s.logs.Add(model.ActivityLogEntry{Agent: "Zoe", Action: "Fresh note"})

	var result derive.Result
	getJSON(t, ts.URL+"/api/activity?source=local", &result)
	assert.Equal(t, 9, result.TotalCount)
	assert.Equal(t, "Fresh note", result.Entries[0].Action)
}

func TestCronEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var body struct {
		Jobs []json.RawMessage `json:"jobs"`
	}
	resp := getJSON(t, ts.URL+"/api/cron", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body.Jobs)
}

func TestHealthEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	var body map[string]any
	resp := getJSON(t, ts.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, true, body["connected"])
}

func TestTaskCRUDOverAPI(t *testing.T) {
	_, ts := newTestServer(t)

	// create
	payload := `{"title":"Ship dashboard","assignee":"zoe","priority":"high"}`
	resp, err := http.Post(ts.URL+"/api/tasks", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	var created model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, model.TaskBacklog, created.Status)

	// list
	var tasks []model.Task
	getJSON(t, ts.URL+"/api/tasks", &tasks)
	require.Len(t, tasks, 1)

	// move to done
	patch, _ := json.Marshal(map[string]string{"status": "done"})
	req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/api/tasks/"+created.ID, bytes.NewReader(patch))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	var done model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&done))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.TaskDone, done.Status)
	require.NotNil(t, done.CompletedAt)

	// the mutation was mirrored into the activity log
	var activity derive.Result
	getJSON(t, ts.URL+"/api/activity?source=local", &activity)
	assert.Equal(t, "Task completed", activity.Entries[0].Action)
	assert.Equal(t, model.LevelSuccess, activity.Entries[0].Level)

	// delete
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/tasks/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = getJSON(t, ts.URL+"/api/tasks/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTaskValidationOverAPI(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/tasks", "application/json", strings.NewReader(`{"title":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/api/tasks", "application/json", strings.NewReader(`not json`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// patch without a status field
	req, _ := http.NewRequest(http.MethodPatch, ts.URL+"/api/tasks/whatever", strings.NewReader(`{}`))
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/tasks", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestIndexPageServed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
