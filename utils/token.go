package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateRandomToken returns a random alphanumeric code, e.g. for
// password resets.
func GenerateRandomToken(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(err) // crypto/rand should never fail
		}
		token[i] = charset[n.Int64()]
	}
	return string(token)
}
