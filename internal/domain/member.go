package domain

import (
	"strconv"
	"strings"
)

// Member is a roster entry mirrored from the membership spreadsheet
type Member struct {
	ID                string // CertificateNumber + Type
	CertificateNumber string
	LastName          string
	Type              string
	PrimaryEmail      string
	SecondaryEmail    string
}

// MemberID builds the composite roster id
func MemberID(certificateNumber, memberType string) string {
	return certificateNumber + memberType
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasEmail matches either email address, case-insensitively
func (m Member) HasEmail(email string) bool {
	email = NormalizeEmail(email)
	if email == "" {
		return false
	}
	return m.PrimaryEmail == email || m.SecondaryEmail == email
}

// Account is a dues record from the accounts sheet
type Account struct {
	ID                string
	CertificateNumber string
	LastName          string
	Type              string
	MoneyOwed         bool
	EligibleToReserve bool
}

// IsAcceptable filters out header, total and malformed rows:
// the last name must be non-numeric text and the certificate must be numeric
func (a Account) IsAcceptable() bool {
	if strings.TrimSpace(a.LastName) == "" || isNumeric(a.LastName) {
		return false
	}
	return isNumeric(a.CertificateNumber)
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil
}
