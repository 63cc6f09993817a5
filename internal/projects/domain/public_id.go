package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// IDPrefix is prepended to every id the bundled store assigns.
const IDPrefix = "bluecarbon"

// nine random digits split as 5-4
var idSpace = big.NewInt(1_000_000_000)

// NewPublicID returns a store-assigned project id such as "bluecarbon-04821-3957".
func NewPublicID() (string, error) {
	n, err := rand.Int(rand.Reader, idSpace)
	if err != nil {
		return "", fmt.Errorf("generate project id: %w", err)
	}
	v := n.Int64()
	return fmt.Sprintf("%s-%05d-%04d", IDPrefix, v/10_000, v%10_000), nil
}
