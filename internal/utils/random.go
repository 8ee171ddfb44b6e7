package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// RandomFromAlphabet returns a string of length n built from uniformly
// distributed, cryptographically random picks from the given alphabet.
func RandomFromAlphabet(alphabet string, n int) (string, error) {
	if alphabet == "" || n <= 0 {
		return "", fmt.Errorf("invalid params for random string: alphabet len %d, n %d", len(alphabet), n)
	}

	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("error reading random source: %w", err)
		}
		out[i] = alphabet[idx.Int64()]
	}

	return string(out), nil
}

// RandomHex returns a hex string of 2*n characters from n random bytes.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random source: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
