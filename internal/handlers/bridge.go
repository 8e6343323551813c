package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kubev2v/node-inspector/pkg/bridge"
)

// ListProbes returns the probe catalog
// (GET /bridge/probes)
func (h *Handler) ListProbes(c *gin.Context) {
	probes := bridge.Catalog()
	result := make([]gin.H, 0, len(probes))
	for _, p := range probes {
		result = append(result, gin.H{
			"name":      p.Name,
			"address":   p.Address,
			"operation": p.Operation,
		})
	}
	c.JSON(http.StatusOK, gin.H{"probes": result})
}

// GetProbe runs one probe against the management bridge
// (GET /bridge/probes/{name})
func (h *Handler) GetProbe(c *gin.Context) {
	name := c.Param("name")
	if _, err := bridge.LookupProbe(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	responses, err := h.monitor.Poll(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, "bridge_handler", "probe failed", err)
		return
	}
	resp := responses[name]
	c.JSON(http.StatusOK, gin.H{
		"probe":  name,
		"status": resp.Status,
		"value":  resp.Value,
	})
}
