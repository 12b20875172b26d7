package api

import (
	"asura/tracker/internal/service"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MaxStateBytes bounds the size of an uploaded activity document.
const MaxStateBytes = 5 << 20

type StateHandler struct {
	stateService service.StateService
	log          logrus.FieldLogger
}

func NewStateHandler(stateService service.StateService, log logrus.FieldLogger) *StateHandler {
	return &StateHandler{stateService: stateService, log: log}
}

// GetState returns the stored document verbatim, or null.
// GET /api/state
func (h *StateHandler) GetState(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	data, err := h.stateService.Get(c.Request.Context(), userID)
	if err != nil {
		h.log.WithError(err).WithField("user", userID).Error("get state")
		abortWithError(c, http.StatusInternalServerError, "failed")
		return
	}
	if data == nil {
		data = []byte("null")
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// PutState replaces the stored document unconditionally.
// PUT /api/state
func (h *StateHandler) PutState(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxStateBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, "state too large")
			return
		}
		abortWithError(c, http.StatusBadRequest, "failed to read body")
		return
	}

	if err := h.stateService.Put(c.Request.Context(), userID, body); err != nil {
		if errors.Is(err, service.ErrInvalidState) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.WithError(err).WithField("user", userID).Error("put state")
		abortWithError(c, http.StatusInternalServerError, "failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportState uploads a snapshot of the stored document and returns a download URL.
// POST /api/state/export
func (h *StateHandler) ExportState(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	res, err := h.stateService.Export(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportUnavailable):
			abortWithError(c, http.StatusServiceUnavailable, err.Error())
		case errors.Is(err, service.ErrStateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			h.log.WithError(err).WithField("user", userID).Error("export state")
			abortWithError(c, http.StatusInternalServerError, "export failed")
		}
		return
	}
	c.JSON(http.StatusOK, res)
}
