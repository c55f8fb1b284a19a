package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret, id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s.%s.%s", id, timestamp, string(body))))
	return "v1," + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("CLERK_WEBHOOK_SECRET", secret)

	h := NewWebhookHandler(nil)
	body := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)

	r := httptest.NewRequest("POST", "/webhooks/clerk", nil)
	r.Header.Set("svix-id", "msg_1")
	r.Header.Set("svix-timestamp", "1700000000")
	r.Header.Set("svix-signature", signPayload(secret, "msg_1", "1700000000", body))

	assert.True(t, h.verifyWebhookSignature(r, body))
}

func TestVerifyWebhookSignatureRejectsTampering(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("CLERK_WEBHOOK_SECRET", secret)

	h := NewWebhookHandler(nil)
	body := []byte(`{"type":"user.created"}`)

	r := httptest.NewRequest("POST", "/webhooks/clerk", nil)
	r.Header.Set("svix-id", "msg_1")
	r.Header.Set("svix-timestamp", "1700000000")
	r.Header.Set("svix-signature", signPayload(secret, "msg_1", "1700000000", body))

	tampered := []byte(`{"type":"user.deleted"}`)
	assert.False(t, h.verifyWebhookSignature(r, tampered))
}

func TestVerifyWebhookSignatureMissingHeaders(t *testing.T) {
	t.Setenv("CLERK_WEBHOOK_SECRET", "whsec_test")

	h := NewWebhookHandler(nil)
	r := httptest.NewRequest("POST", "/webhooks/clerk", nil)

	assert.False(t, h.verifyWebhookSignature(r, []byte(`{}`)))
}

func TestVerifyWebhookSignatureRotatedSecrets(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("CLERK_WEBHOOK_SECRET", secret)

	h := NewWebhookHandler(nil)
	body := []byte(`{"type":"user.updated"}`)
	good := signPayload(secret, "msg_2", "1700000001", body)

	r := httptest.NewRequest("POST", "/webhooks/clerk", nil)
	r.Header.Set("svix-id", "msg_2")
	r.Header.Set("svix-timestamp", "1700000001")
	r.Header.Set("svix-signature", "v1,deadbeef "+good)

	require.True(t, h.verifyWebhookSignature(r, body))
}
