// Package dedupe derives the stable deduplication key that makes transaction
// ingestion idempotent. The key is stored on the event row under a unique
// index, so re-processing the same upstream feed is a no-op instead of a
// duplicate insert.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fieldDelimiter separates the fingerprint fields. It is not expected to
// occur naturally inside any of them.
const fieldDelimiter = "|"

// timestampLayout is a canonical ISO-8601 form: millisecond precision, UTC,
// Z suffix. Two representations of the same instant must serialize
// identically or the key would not be deterministic.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Key computes the deduplication key for an incoming transaction record.
//
// When the upstream provider supplied a transaction identifier, that
// identifier is authoritative and collision-free per account, so the key is
// simply "{accountID}:{externalID}". An empty externalID is treated the same
// as an absent one and routed to the content-hash path; external feeds that
// send "" for unidentified transactions therefore dedupe on content, not on
// the empty identifier.
//
// Without an external identifier the key is the lowercase hex SHA-256 of a
// canonical fingerprint built from the account, the effective timestamp, the
// primary leg's exact minor-unit amount and the normalized description. Only
// the primary leg participates: the key disambiguates economically distinct
// events, it does not enumerate postings.
//
// amountMinor must be integer-valued; its exact base-10 digit string is used
// so arbitrarily large amounts never pass through a float.
func Key(accountID, externalID string, effectiveAt time.Time, amountMinor decimal.Decimal, description string) string {
	if externalID != "" {
		return accountID + ":" + externalID
	}

	fingerprint := strings.Join([]string{
		accountID,
		effectiveAt.UTC().Format(timestampLayout),
		amountMinor.String(),
		NormalizeDescription(description),
	}, fieldDelimiter)

	sum := sha256.Sum256([]byte(fingerprint))
	return hex.EncodeToString(sum[:])
}

// NormalizeDescription trims the description, lowercases it and collapses
// every run of whitespace to a single space, so cosmetic differences between
// feed runs ("  Coffee   Shop " vs "coffee shop") do not defeat
// deduplication. Normalizing an already-normalized string returns it
// unchanged.
func NormalizeDescription(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
