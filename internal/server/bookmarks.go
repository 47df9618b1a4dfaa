package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/filedeck/filedeck/internal/bookmarks"
	"github.com/filedeck/filedeck/internal/shared/id"
)

func (s *Server) listBookmarks(c *gin.Context) {
	var entries []*bookmarks.Entry
	if tag := c.Query("tag"); tag != "" {
		entries = s.store.ByTag(tag)
	} else {
		entries = s.store.List()
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (s *Server) addBookmark(c *gin.Context) {
	var entry bookmarks.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	added, err := s.store.Add(&entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.persist(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, added)
}

func (s *Server) getBookmark(c *gin.Context) {
	entry, ok := s.bookmarkByParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (s *Server) updateBookmark(c *gin.Context) {
	entryID := id.EntryID(c.Param("id"))
	if !entryID.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed entry id"})
		return
	}

	var entry bookmarks.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	updated, err := s.store.Update(entryID, &entry)
	if err != nil {
		if errors.Is(err, bookmarks.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}
	if err := s.persist(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) removeBookmark(c *gin.Context) {
	entryID := id.EntryID(c.Param("id"))
	if !entryID.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed entry id"})
		return
	}

	if err := s.store.Remove(entryID); err != nil {
		if errors.Is(err, bookmarks.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	if err := s.persist(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) verifyBookmarks(c *gin.Context) {
	checks, err := s.store.Verify(c.Request.Context(), s.mgr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checks": checks, "count": len(checks)})
}

func (s *Server) bookmarkByParam(c *gin.Context) (*bookmarks.Entry, bool) {
	entryID := id.EntryID(c.Param("id"))
	if !entryID.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed entry id"})
		return nil, false
	}
	entry, err := s.store.Get(entryID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return entry, true
}

func (s *Server) persist() error {
	if err := s.store.Save(); err != nil {
		s.logger.Error("Failed to persist bookmark store", zap.Error(err))
		return err
	}
	return nil
}
