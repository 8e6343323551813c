package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListTables returns the table catalog in its fixed order
// (GET /tables)
func (h *Handler) ListTables(c *gin.Context) {
	tables := h.inspector.Tables()
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.String())
	}
	c.JSON(http.StatusOK, gin.H{"tables": names})
}

// GetTable returns every row of a catalog table
// (GET /tables/{name})
func (h *Handler) GetTable(c *gin.Context) {
	rs, err := h.inspector.Table(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, "table_handler", "failed to fetch table", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}
