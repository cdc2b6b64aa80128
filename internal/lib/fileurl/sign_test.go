package fileurl

import (
	"fmt"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	signed := SignURL("payment_1700000000000_receipt.jpg", "secret", time.Minute)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/payment_1700000000000_receipt.jpg", u.Path)

	q := u.Query()
	ok := Verify("payment_1700000000000_receipt.jpg", q.Get("expires"), q.Get("sig"), "secret")
	assert.True(t, ok)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed := SignURL("photo_1_a.png", "secret", time.Minute)
	q, err := url.Parse(signed)
	require.NoError(t, err)

	ok := Verify("photo_1_a.png", q.Query().Get("expires"), q.Query().Get("sig"), "other")
	assert.False(t, ok)
}

func TestVerifyRejectsTamperedRef(t *testing.T) {
	signed := SignURL("photo_1_a.png", "secret", time.Minute)
	q, err := url.Parse(signed)
	require.NoError(t, err)

	ok := Verify("photo_1_b.png", q.Query().Get("expires"), q.Query().Get("sig"), "secret")
	assert.False(t, ok)
}

func TestVerifyRejectsExpired(t *testing.T) {
	expires := time.Now().Add(-time.Minute).Unix()
	sig := computeHMAC("photo_1_a.png", expires, "secret")

	ok := Verify("photo_1_a.png", strconv.FormatInt(expires, 10), sig, "secret")
	assert.False(t, ok)
}

func TestVerifyRejectsMalformedExpiry(t *testing.T) {
	assert.False(t, Verify("ref", "soon", "sig", "secret"))
}

func TestSignatureCoversExpiry(t *testing.T) {
	expires := time.Now().Add(time.Minute).Unix()
	sig := computeHMAC("ref", expires, "secret")

	// shifting the expiry invalidates the signature
	shifted := fmt.Sprintf("%d", expires+3600)
	assert.False(t, Verify("ref", shifted, sig, "secret"))
}
