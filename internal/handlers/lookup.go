package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/todosimple/taskboard/internal/errors"
	"github.com/todosimple/taskboard/internal/repository"
)

// LookupHandler serves the shared status and priority catalogs.
type LookupHandler struct {
	lookupRepo repository.LookupRepository
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(lookupRepo repository.LookupRepository) *LookupHandler {
	return &LookupHandler{lookupRepo: lookupRepo}
}

// ListStatuses returns all task statuses in catalog order.
func (h *LookupHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.lookupRepo.ListStatuses()
	if err != nil {
		log.Printf("list statuses failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"statuses": statuses})
}

// ListPriorities returns all priorities in catalog order.
func (h *LookupHandler) ListPriorities(c *gin.Context) {
	priorities, err := h.lookupRepo.ListPriorities()
	if err != nil {
		log.Printf("list priorities failed: %v", err)
		apierrors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"priorities": priorities})
}
