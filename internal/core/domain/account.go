package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive AccountStatus = "active"
	StatusBanned AccountStatus = "banned"
)

// AccountSource tells where the authoritative record of an account lives.
// Archive-sourced accounts must be materialized into the live store before
// any mutation; after that the live copy shadows the archive snapshot.
type AccountSource string

const (
	SourceArchive AccountSource = "archive"
	SourceLive    AccountSource = "live"
)

// Account is the central entity of the ledger.
// Codes have the fixed shape <Letter><3-digit number><same Letter>, e.g. B700B.
type Account struct {
	Code         string          `json:"code"`    // Primary key, canonical uppercase
	OwnerID      string          `json:"ownerID"` // Chat-platform sender id; empty until linked
	Username     string          `json:"username"`
	Balance      decimal.Decimal `json:"balance"` // Never negative
	Status       AccountStatus   `json:"status"`
	Source       AccountSource   `json:"source"`
	ArchiveRef   string          `json:"archiveRef"` // Originating archive page, e.g. "B8"; kept after activation
	PasswordHash string          `json:"-"`
	AuditFields
}

// IsBanned reports whether balance mutations must be rejected.
func (a *Account) IsBanned() bool {
	return a.Status == StatusBanned
}

var codePattern = regexp.MustCompile(`^([A-Z])([0-9]{3})([A-Z])$`)

// NormalizeCode canonicalizes a user-supplied account code to uppercase and
// validates its shape. Input is case-insensitive; the leading and trailing
// letters must match.
func NormalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	m := codePattern.FindStringSubmatch(code)
	if m == nil || m[1] != m[3] {
		return "", fmt.Errorf("malformed account code %q", raw)
	}
	return code, nil
}

// CodeParts splits a canonical code into its series letter and number.
func CodeParts(code string) (series string, number int, err error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return "", 0, fmt.Errorf("malformed account code %q", code)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, err
	}
	return m[1], n, nil
}
