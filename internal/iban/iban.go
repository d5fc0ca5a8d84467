// Package iban splits German IBANs into the bank code (BLZ) and account
// number used by MT940.
package iban

import "strings"

// German IBAN layout: DEpp bbbb bbbb cccc cccc cc
// pp = check digits, b = bank code (8), c = account number (10).
const germanLength = 22

// Decompose returns the bank code and account number of a German IBAN.
// Any other input yields two empty strings.
func Decompose(raw string) (bankCode, accountNumber string) {
	s := normalize(raw)
	if len(s) != germanLength || !strings.HasPrefix(s, "DE") {
		return "", ""
	}
	return s[4:12], s[12:22]
}

// BankCode returns the bank code of a German IBAN, or "".
func BankCode(raw string) string {
	code, _ := Decompose(raw)
	return code
}

// AccountNumber returns the account number of a German IBAN, or "".
func AccountNumber(raw string) string {
	_, acct := Decompose(raw)
	return acct
}

// Combined returns "bankCode/accountNumber" for the :25: line. When the IBAN
// cannot be decomposed the original string is returned unchanged.
func Combined(raw string) string {
	code, acct := Decompose(raw)
	if code == "" {
		return raw
	}
	return code + "/" + acct
}

func normalize(raw string) string {
	return strings.ReplaceAll(raw, " ", "")
}
