package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/asyncops"
	"github.com/filedeck/filedeck/internal/shared/id"
)

type submitRequest struct {
	Operation asyncops.Operation `json:"operation"`
	// TimeoutMs overrides the configured default; an explicit 0 means run
	// to completion.
	TimeoutMs *int64 `json:"timeout_ms,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"active_tasks": s.mgr.ActiveTasks(),
		"bookmarks":    s.store.Len(),
	})
}

func (s *Server) submitTask(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if err := req.Operation.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeout := s.defaultTimeout
	if req.TimeoutMs != nil {
		timeout = time.Duration(*req.TimeoutMs) * time.Millisecond
	}

	h, err := s.mgr.SubmitTimeout(req.Operation, timeout)
	if err != nil {
		switch {
		case errors.Is(err, asyncops.ErrQueueFull):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		case errors.Is(err, asyncops.ErrManagerClosed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"task_id": h.ID(),
		"op":      req.Operation.Kind,
	})
}

func (s *Server) taskHandle(c *gin.Context) (*asyncops.Handle, bool) {
	taskID := id.TaskID(c.Param("id"))
	if !taskID.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed task id"})
		return nil, false
	}
	h, ok := s.mgr.Lookup(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return nil, false
	}
	return h, true
}

func (s *Server) pollTask(c *gin.Context) {
	h, ok := s.taskHandle(c)
	if !ok {
		return
	}

	res, done := h.Poll()
	if !done {
		resp := gin.H{"task_id": h.ID(), "done": false}
		// The ULID carries the submission time, so a client can show
		// queue age without another field on the task.
		if ts, err := h.ID().Timestamp(); err == nil {
			resp["submitted_at"] = ts
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": h.ID(), "done": true, "result": res})
}

func (s *Server) waitTask(c *gin.Context) {
	h, ok := s.taskHandle(c)
	if !ok {
		return
	}

	// The request context aborts the wait when the client disconnects; the
	// task itself keeps running.
	res, err := h.Wait(c.Request.Context())
	if err != nil {
		s.logger.Debug("Wait aborted",
			zap.String("task_id", h.ID().String()),
			zap.Error(err),
		)
		c.Status(http.StatusRequestTimeout)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": h.ID(), "done": true, "result": res})
}

func (s *Server) cancelTask(c *gin.Context) {
	h, ok := s.taskHandle(c)
	if !ok {
		return
	}

	h.Cancel()
	c.JSON(http.StatusAccepted, gin.H{"task_id": h.ID(), "cancelled": true})
}
