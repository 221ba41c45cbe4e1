package booking

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// RateFingerprint is the stored form of a rate key. Raw keys are never persisted.
func RateFingerprint(rateKey string) string {
	sum := sha256.Sum256([]byte(rateKey))
	return hex.EncodeToString(sum[:])
}

// Fingerprint identifies "the same booking" across payment attempts:
// session, hotel, group, stay dates and the set of rate fingerprints.
func Fingerprint(p *Payload) string {
	parts := []string{
		p.SessionID,
		p.HotelCode,
		p.GroupCode,
		p.CheckIn,
		p.CheckOut,
		strings.Join(p.RateFingerprints(), ","),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
