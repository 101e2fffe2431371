package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

func generateNonce() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GetNonce / PostNonce 发放一次性 nonce，防止重放
func (h *Handler) GetNonce(c *gin.Context) {
	h.issueNonce(c)
}

func (h *Handler) PostNonce(c *gin.Context) {
	h.issueNonce(c)
}

func (h *Handler) issueNonce(c *gin.Context) {
	nonce, err := generateNonce()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate nonce"})
		return
	}
	h.storeNonce(nonce)

	c.JSON(http.StatusOK, gin.H{"nonce": nonce, "message": LoginMessage(nonce)})
}
