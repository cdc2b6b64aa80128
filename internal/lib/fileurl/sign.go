// Package fileurl provides HMAC-signed URL generation and verification for
// artifact downloads. URLs expire after a configurable TTL so references
// handed to reviewers cannot be replayed indefinitely.
package fileurl

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// SignURL returns a relative URL path with HMAC signature and expiry query
// parameters. The signature covers "{ref}:{expiresUnix}" using HMAC-SHA256.
func SignURL(ref, secret string, ttl time.Duration) string {
	expires := time.Now().Add(ttl).Unix()
	sig := computeHMAC(ref, expires, secret)
	return fmt.Sprintf("/api/v1/files/%s?expires=%d&sig=%s", url.PathEscape(ref), expires, sig)
}

// Verify checks that the HMAC signature is valid and the URL has not expired.
func Verify(ref, expires, sig, secret string) bool {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > exp {
		return false
	}
	expected := computeHMAC(ref, exp, secret)
	return hmac.Equal([]byte(sig), []byte(expected))
}

func computeHMAC(ref string, expires int64, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%s:%d", ref, expires)))
	return hex.EncodeToString(mac.Sum(nil))
}
