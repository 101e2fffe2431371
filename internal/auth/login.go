package auth

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"CardTable/internal/utils"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const messagePrefix = "Sign this message to authenticate with CardTable. Nonce: "

var (
	ErrBadSignature = errors.New("bad signature")
	ErrInvalidNonce = errors.New("invalid nonce")
)

type LoginRequest struct {
	Address   string `json:"address" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
}

type Handler struct {
	secret   []byte
	tokenTTL time.Duration
	nonceTTL time.Duration

	mu         sync.Mutex
	nonceStore map[string]time.Time // nonce -> 过期时间
}

// 工厂方法：创建 handler
func NewHandler(secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{
		secret:     secret,
		tokenTTL:   tokenTTL,
		nonceTTL:   5 * time.Minute,
		nonceStore: make(map[string]time.Time),
	}
}

// LoginMessage 钱包需要签名的原文
func LoginMessage(nonce string) string {
	return messagePrefix + nonce
}

// textHash 与 MetaMask personal_sign 完全一致的消息哈希
func textHash(msg string) []byte {
	prefixed := fmt.Sprintf("\x19Ethereum Signed Message:\n%d%s", len(msg), msg)
	return crypto.Keccak256([]byte(prefixed))
}

// RecoverAddress 从 personal_sign 签名恢复签名者地址
func RecoverAddress(msg, sigHex string) (string, error) {
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(sigHex, "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	if len(sigBytes) != crypto.SignatureLength {
		return "", fmt.Errorf("%w: length %d", ErrBadSignature, len(sigBytes))
	}
	// 修正 V 值
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}
	pubKey, err := crypto.SigToPub(textHash(msg), sigBytes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return crypto.PubkeyToAddress(*pubKey).Hex(), nil
}

// IssueToken 生成 HS256 JWT，sub 为钱包地址
func IssueToken(secret []byte, address string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": address,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (h *Handler) storeNonce(nonce string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	for n, exp := range h.nonceStore {
		if now.After(exp) {
			delete(h.nonceStore, n)
		}
	}
	h.nonceStore[nonce] = now.Add(h.nonceTTL)
}

// consumeNonce 只允许使用一次
func (h *Handler) consumeNonce(nonce string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	exp, ok := h.nonceStore[nonce]
	if !ok {
		return ErrInvalidNonce
	}
	delete(h.nonceStore, nonce)
	if time.Now().After(exp) {
		return fmt.Errorf("%w: expired", ErrInvalidNonce)
	}
	return nil
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.consumeNonce(req.Nonce); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recovered, err := RecoverAddress(LoginMessage(req.Nonce), req.Signature)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signature verify failed"})
		return
	}
	if !strings.EqualFold(recovered, req.Address) {
		utils.Log.Warn("login signature mismatch", "claimed", req.Address, "recovered", recovered)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "signature mismatch"})
		return
	}

	jwtStr, err := IssueToken(h.secret, recovered, h.tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt generation failed"})
		return
	}
	utils.Log.Info("login", "addr", recovered)

	c.JSON(http.StatusOK, gin.H{
		"jwt": jwtStr,
	})
}
