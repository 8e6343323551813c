package handlers

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kubev2v/node-inspector/internal/models"
	"github.com/kubev2v/node-inspector/internal/services"
	srvErrors "github.com/kubev2v/node-inspector/pkg/errors"
)

type Handler struct {
	inspector *services.Inspector
	monitor   *services.Monitor
}

func New(inspector *services.Inspector, monitor *services.Monitor) *Handler {
	return &Handler{
		inspector: inspector,
		monitor:   monitor,
	}
}

// RegisterRoutes mounts every endpoint on router, normally the /api/v1 group.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tables", h.ListTables)
	router.GET("/tables/:name", h.GetTable)

	router.GET("/vault/states", h.GetVaultStates)
	router.GET("/vault/linear", h.GetLinearIDByTransaction)
	router.GET("/vault/linear/:id", h.GetLinearStates)
	router.GET("/vault/linear/:id/states", h.GetStatesByLinearID)
	router.GET("/vault/fungible", h.GetFungibleStates)
	router.GET("/vault/notes", h.GetTransactionNotes)

	router.GET("/bridge/probes", h.ListProbes)
	router.GET("/bridge/probes/:name", h.GetProbe)
}

type RowSetResponse struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Total   int      `json:"total"`
}

func newRowSetResponse(rs *models.RowSet) RowSetResponse {
	rows := make([][]any, 0, rs.Len())
	for i := range rs.Rows {
		values := rs.Values(i)
		for j, v := range values {
			if b, ok := v.([]byte); ok {
				values[j] = hex.EncodeToString(b)
			}
		}
		rows = append(rows, values)
	}
	return RowSetResponse{
		Table:   rs.Table.String(),
		Columns: rs.Columns,
		Rows:    rows,
		Total:   rs.Len(),
	}
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case srvErrors.IsQueryError(err):
		return http.StatusBadRequest
	case srvErrors.IsNotFoundError(err):
		return http.StatusNotFound
	case srvErrors.IsConfigurationError(err):
		return http.StatusServiceUnavailable
	case srvErrors.IsRemoteError(err), srvErrors.IsNetworkError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, logger string, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		zap.S().Named(logger).Errorw(msg, "error", err)
	} else {
		zap.S().Named(logger).Debugw(msg, "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
