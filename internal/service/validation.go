package service

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/idna"
)

var (
	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-']+@[a-z0-9.-]+\.[a-z]{2,}$`)
	// Loose match for phone-like runs in free text; phonenumbers decides validity.
	phoneCandidatePattern = regexp.MustCompile(`\+?\(?\d[\d\s().\-]{5,}\d`)
	idnaProfile           = idna.Lookup
)

const defaultPhoneRegion = "US"

// NormalizeEmail lower-cases and validates an address returned by the lookup
// service. Invalid addresses yield an empty string.
func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return ""
	}
	asciiDomain, err := idnaProfile.ToASCII(domain)
	if err != nil || asciiDomain == "" || !isDomainValid(asciiDomain) {
		return ""
	}
	email = local + "@" + asciiDomain
	if !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// ExtractPhone returns the first valid phone number in text formatted as E.164.
func ExtractPhone(text, region string) string {
	for _, candidate := range phoneCandidatePattern.FindAllString(text, -1) {
		if phone := normalizePhone(candidate, region); phone != "" {
			return phone
		}
	}
	return ""
}

func normalizePhone(raw, region string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if region == "" {
		region = defaultPhoneRegion
	}
	number, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(number) || !phonenumbers.IsValidNumber(number) {
		return ""
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

func isDomainValid(domain string) bool {
	if strings.Count(domain, ".") == 0 {
		return false
	}
	parts := strings.Split(domain, ".")
	for _, part := range parts {
		if part == "" || strings.HasPrefix(part, "-") || strings.HasSuffix(part, "-") {
			return false
		}
	}
	return true
}
