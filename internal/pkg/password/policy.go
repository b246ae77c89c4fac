package password

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinLength = 8
	// MaxBytes is the longest input bcrypt accepts.
	MaxBytes = 72
)

// commonPasswords is a short deny-list of the most frequently leaked passwords.
var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"12345678": {}, "123456789": {}, "1234567890": {}, "87654321": {},
	"qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {},
	"admin123": {}, "letmein1": {}, "trustno1": {}, "superman": {},
	"abc12345": {}, "11111111": {}, "00000000": {}, "starwars": {},
	"whatever": {}, "dragon12": {}, "monkey12": {}, "changeme": {},
}

// Validate returns every policy violation for pw. attrs are user attributes
// (email, first name, last name) the password must not resemble. An empty
// result means the password is acceptable.
func Validate(pw string, attrs ...string) []string {
	var problems []string
	if len([]rune(pw)) < MinLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if len(pw) > MaxBytes {
		problems = append(problems, "This password is too long. It must contain at most 72 bytes.")
	}
	if _, ok := commonPasswords[strings.ToLower(pw)]; ok {
		problems = append(problems, "This password is too common.")
	}
	if pw != "" && allDigits(pw) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if similar(pw, attrs) {
		problems = append(problems, "The password is too similar to your personal information.")
	}
	return problems
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func similar(pw string, attrs []string) bool {
	lp := strings.ToLower(pw)
	if len(lp) < 3 {
		return false
	}
	for _, a := range attrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if at := strings.IndexByte(a, '@'); at >= 0 {
			a = a[:at]
		}
		if len(a) < 3 {
			continue
		}
		if strings.Contains(lp, a) || strings.Contains(a, lp) {
			return true
		}
	}
	return false
}

// Hash returns the bcrypt hash of pw.
func Hash(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether pw matches hash.
func Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
