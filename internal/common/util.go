package common

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandByteArray returns size bytes from crypto/rand.
// It panics only if the system random source is unavailable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// NewSigningKey returns a fresh random key of size bytes, standard base64 encoded,
// in the form expected by the server's secret_key setting.
func NewSigningKey(size int) string {
	key := GenerateRandByteArray(size)
	defer WipeByteArray(key)
	return base64.StdEncoding.EncodeToString(key)
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Used for passwords read from the terminal once they have been sent.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
