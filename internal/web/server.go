// Package web serves the dashboard: a small embedded front page plus
// the JSON API the page (and anything else) polls.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"clawboard/internal/derive"
	"clawboard/internal/gateway"
	"clawboard/internal/logstore"
	"clawboard/internal/metrics"
	"clawboard/internal/model"
	"clawboard/internal/notify"
	"clawboard/internal/poller"
	"clawboard/internal/taskstore"
)

//go:embed static/*
var staticFiles embed.FS

// Server handles the dashboard HTTP surface.
type Server struct {
	poll     *poller.Poller
	tasks    taskstore.Store
	logs     logstore.Store
	metrics  *metrics.Metrics
	notifier notify.Notifier
	port     int
}

// NewServer creates a dashboard server. metrics and notifier may be
// nil.
func NewServer(p *poller.Poller, tasks taskstore.Store, logs logstore.Store, m *metrics.Metrics, n notify.Notifier, port int) *Server {
	if n == nil {
		n = notify.Noop{}
	}
	return &Server{poll: p, tasks: tasks, logs: logs, metrics: m, notifier: n, port: port}
}

// Handler builds the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	contentStatic, _ := fs.Sub(staticFiles, "static")
	mux.Handle("/", http.FileServer(http.FS(contentStatic)))

	mux.HandleFunc("/api/agents", s.handleAgents)
	mux.HandleFunc("/api/activity", s.handleActivity)
	mux.HandleFunc("/api/cron", s.handleCron)
	mux.HandleFunc("/api/tasks", s.handleTasks)
	mux.HandleFunc("/api/tasks/", s.handleTaskByID)
	mux.HandleFunc("/api/health", s.handleHealth)

	if s.metrics != nil {
		return s.metrics.RequestTracking(mux)
	}
	return mux
}

// Start starts the HTTP server. Binds to localhost only.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	slog.Info("Starting dashboard server", "addr", "http://"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	snap := s.poll.Snapshot()
	statuses := snap.Statuses
	if statuses == nil {
		statuses = []model.AgentStatus{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agents":    statuses,
		"connected": snap.Connected,
		"fetchedAt": snap.FetchedAt,
	})
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	scope := derive.Scope(r.URL.Query().Get("source"))
	if scope == "" {
		scope = derive.ScopeAll
	}
	if !derive.ValidScope(scope) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown source %q", scope))
		return
	}

	// Re-derive against the snapshot's sessions so local-store writes
	// show up without waiting for the next poll tick.
	snap := s.poll.Snapshot()
	var local []model.ActivityLogEntry
	if s.logs != nil {
		local = s.logs.Logs()
	}
	writeJSON(w, http.StatusOK, derive.ActivityLogs(snap.Sessions, local, scope))
}

func (s *Server) handleCron(w http.ResponseWriter, r *http.Request) {
	snap := s.poll.Snapshot()
	jobs := snap.CronJobs
	if jobs == nil {
		jobs = []gateway.CronJob{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.poll.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"connected": snap.Connected,
		"fetchedAt": snap.FetchedAt,
	})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tasks, err := s.tasks.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if tasks == nil {
			tasks = []model.Task{}
		}
		if s.metrics != nil {
			s.metrics.SetTaskCounts(tasks)
		}
		writeJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var t model.Task
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			writeError(w, http.StatusBadRequest, "invalid task payload")
			return
		}
		created, err := s.tasks.Create(r.Context(), t)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logTaskEvent(r.Context(), created, "Task created", model.LevelInfo)
		writeJSON(w, http.StatusCreated, created)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleTaskByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.tasks.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, t)

	case http.MethodPatch:
		var patch struct {
			Status model.TaskStatus `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || patch.Status == "" {
			writeError(w, http.StatusBadRequest, "expected a status field")
			return
		}
		t, err := s.tasks.SetStatus(r.Context(), id, patch.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		level := model.LevelInfo
		action := "Task updated"
		if t.Status == model.TaskDone {
			level = model.LevelSuccess
			action = "Task completed"
			s.notifier.Notify(r.Context(), notify.EventTaskDone, fmt.Sprintf("Task %q done (%s)", t.Title, t.Assignee))
		}
		s.logTaskEvent(r.Context(), t, action, level)
		writeJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		if err := s.tasks.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// logTaskEvent mirrors task mutations into the local activity log so
// they show up in the aggregated view.
func (s *Server) logTaskEvent(ctx context.Context, t model.Task, action string, level model.LogLevel) {
	if s.logs == nil {
		return
	}
	agent := t.Assignee
	if agent == "" {
		agent = "Unknown"
	}
	s.logs.Add(model.ActivityLogEntry{
		Agent:   agent,
		Action:  action,
		Details: fmt.Sprintf("%s (%s)", t.Title, t.Status),
		Level:   level,
	})
}
