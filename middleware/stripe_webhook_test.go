package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const testSecret = "whsec_test"

func sign(payload []byte, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeSignature(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	now := time.Now()

	t.Run("valid", func(t *testing.T) {
		header := sign(payload, testSecret, now)
		assert.NoError(t, verifyStripeSignature(payload, header, testSecret, now))
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := sign(payload, "whsec_other", now)
		assert.Error(t, verifyStripeSignature(payload, header, testSecret, now))
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := sign(payload, testSecret, now)
		assert.Error(t, verifyStripeSignature([]byte(`{}`), header, testSecret, now))
	})

	t.Run("stale timestamp", func(t *testing.T) {
		header := sign(payload, testSecret, now.Add(-10*time.Minute))
		assert.Error(t, verifyStripeSignature(payload, header, testSecret, now))
	})

	t.Run("malformed header", func(t *testing.T) {
		assert.Error(t, verifyStripeSignature(payload, "nonsense", testSecret, now))
		assert.Error(t, verifyStripeSignature(payload, "t=abc,v1=def", testSecret, now))
	})

	t.Run("second v1 signature accepted", func(t *testing.T) {
		header := sign(payload, testSecret, now) + ",v1=deadbeef"
		assert.NoError(t, verifyStripeSignature(payload, header, testSecret, now))
	})
}

func webhookRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook", StripeWebhookAuth(testSecret), func(c *gin.Context) {
		// The body must still be readable after verification.
		raw, err := c.GetRawData()
		if err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"len": len(raw)})
	})
	return r
}

func TestStripeWebhookAuthMiddleware(t *testing.T) {
	payload := []byte(`{"type":"checkout.session.completed"}`)
	r := webhookRouter()

	t.Run("accepts signed payload and restores body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", sign(payload, testSecret, time.Now()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf("%d", len(payload)))
	})

	t.Run("rejects missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects bad signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(payload))
		req.Header.Set("Stripe-Signature", sign(payload, "whsec_other", time.Now()))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
