package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kubev2v/node-inspector/internal/services"
)

// GetVaultStates returns vault states filtered by transactionId,
// contractClass and unconsumed
// (GET /vault/states)
func (h *Handler) GetVaultStates(c *gin.Context) {
	q := services.VaultStatesQuery{
		TransactionID: c.Query("transactionId"),
		ContractClass: c.Query("contractClass"),
	}
	if raw := c.Query("unconsumed"); raw != "" {
		unconsumed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unconsumed must be a boolean"})
			return
		}
		q.Unconsumed = unconsumed
	}

	rs, err := h.inspector.VaultStates(c.Request.Context(), q)
	if err != nil {
		abortWithError(c, "vault_handler", "failed to query vault states", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}

// GetLinearStates returns the linear states carrying a linear id
// (GET /vault/linear/{id})
func (h *Handler) GetLinearStates(c *gin.Context) {
	rs, err := h.inspector.LinearStates(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, "vault_handler", "failed to query linear states", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}

// GetStatesByLinearID returns linear states joined with their vault states
// (GET /vault/linear/{id}/states)
func (h *Handler) GetStatesByLinearID(c *gin.Context) {
	rs, err := h.inspector.StatesByLinearID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, "vault_handler", "failed to query states by linear id", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}

// GetLinearIDByTransaction returns the linear id produced by a transaction
// (GET /vault/linear?transactionId=)
func (h *Handler) GetLinearIDByTransaction(c *gin.Context) {
	txID := c.Query("transactionId")
	if txID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionId is required"})
		return
	}

	id, err := h.inspector.LinearIDByTransaction(c.Request.Context(), txID)
	if err != nil {
		abortWithError(c, "vault_handler", "failed to find linear id", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactionId": txID, "linearId": id})
}

// GetFungibleStates returns fungible states filtered by transactionId and issuer
// (GET /vault/fungible)
func (h *Handler) GetFungibleStates(c *gin.Context) {
	rs, err := h.inspector.FungibleStates(c.Request.Context(), services.FungibleStatesQuery{
		TransactionID: c.Query("transactionId"),
		Issuer:        c.Query("issuer"),
	})
	if err != nil {
		abortWithError(c, "vault_handler", "failed to query fungible states", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}

// GetTransactionNotes returns the notes of a transaction
// (GET /vault/notes?transactionId=)
func (h *Handler) GetTransactionNotes(c *gin.Context) {
	txID := c.Query("transactionId")
	if txID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionId is required"})
		return
	}

	rs, err := h.inspector.TransactionNotes(c.Request.Context(), txID)
	if err != nil {
		abortWithError(c, "vault_handler", "failed to query transaction notes", err)
		return
	}
	c.JSON(http.StatusOK, newRowSetResponse(rs))
}
