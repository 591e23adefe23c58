// Package signature verifies Stripe-style webhook signatures.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Verify checks a "t=<ts>,v1=<hex>" signature header against an
// HMAC-SHA256 of "<ts>.<payload>" keyed with the shared secret.
func Verify(payload []byte, header, secret string) bool {
	timestamp, sig := parseHeader(header)
	if timestamp == "" || sig == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(sig))
}

// Sign produces a signature header for the given payload; used by tests
// and outbound integrations
func Sign(payload []byte, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return "t=" + timestamp + ",v1=" + hex.EncodeToString(mac.Sum(nil))
}

func parseHeader(header string) (timestamp, sig string) {
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "t":
			timestamp = value
		case "v1":
			sig = value
		}
	}
	return timestamp, sig
}
