// Package digest produces short, stable fingerprints.
//
// Fingerprints hash with BLAKE2b-256 and truncate to 10 bytes (20 hex chars).
// They identify a document revision or a set of guard-rail inputs; they are
// not meant to be collision resistant against an adversary.
package digest

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"

	"golang.org/x/crypto/blake2b"
)

const size = 10

// Fingerprint returns a short hex fingerprint of b.
func Fingerprint(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:size])
}

// JSON fingerprints the JSON encoding of v.
func JSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Fingerprint(b), nil
}

// Signature fingerprints a label and a list of numeric inputs. Equal inputs
// always give equal signatures, including NaN of any payload.
func Signature(label string, values ...float64) string {
	h, _ := blake2b.New256(nil) // only fails for oversized keys
	h.Write([]byte(label))
	var buf [8]byte
	for _, v := range values {
		if math.IsNaN(v) {
			v = math.NaN()
		}
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil)[:size])
}
