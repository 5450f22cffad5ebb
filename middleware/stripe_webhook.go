package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Webhook events older than this are rejected to blunt replay attempts.
const webhookTolerance = 5 * time.Minute

// StripeWebhookAuth verifies the gateway signature header before the
// webhook handler runs. The signed payload is the raw body, so the body is
// read here and restored for the handler.
func StripeWebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read payload"})
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(payload))

		header := c.GetHeader("Stripe-Signature")
		if header == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "missing signature header"})
			c.Abort()
			return
		}

		if err := verifyStripeSignature(payload, header, secret, time.Now()); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

// verifyStripeSignature checks the v1 scheme: the header carries a unix
// timestamp t and HMAC-SHA256 signatures v1 over "<t>.<payload>".
func verifyStripeSignature(payload []byte, header, secret string, now time.Time) error {
	var timestamp string
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			timestamp = kv[1]
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return errors.New("malformed signature header")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return errors.New("malformed signature timestamp")
	}
	if diff := now.Sub(time.Unix(ts, 0)); diff > webhookTolerance || diff < -webhookTolerance {
		return errors.New("signature timestamp outside tolerance")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, sig := range signatures {
		if hmac.Equal([]byte(expected), []byte(sig)) {
			return nil
		}
	}
	return errors.New("invalid webhook signature")
}
