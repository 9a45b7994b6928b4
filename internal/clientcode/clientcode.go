// Package clientcode produces the human-readable codes handed to clients
// ("AVV-2026-48213"). The suffix is random rather than clock-derived, so two
// submissions in the same second do not collide; callers still guard with a
// unique index and retry, since five digits is a small space.
package clientcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const suffixSpace = 99999

// Generate returns a code of the form AVV-{year}-{suffix} where year is the
// current year in loc and suffix is a random value in [1, 99999].
func Generate(loc *time.Location) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(suffixSpace))
	if err != nil {
		return "", fmt.Errorf("clientcode: %w", err)
	}
	year := time.Now().In(loc).Year()
	return fmt.Sprintf("AVV-%d-%d", year, n.Int64()+1), nil
}
