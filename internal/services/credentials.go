package services

import (
	"crypto/rand"
	"math/big"
)

// tempPasswordLength is the fixed length of generated portal credentials.
const tempPasswordLength = 16

const tempPasswordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*-_=+"

// generateTempPassword draws a fixed-length secret uniformly from the
// alphanumeric-plus-symbol alphabet using crypto/rand.
func generateTempPassword() (string, error) {
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	buf := make([]byte, tempPasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
