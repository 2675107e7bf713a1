package domain

import (
	"strings"
	"testing"
)

func TestParseEmail_Valid(t *testing.T) {
	cases := []string{
		"ursula_le_guin@gmail.com",
		"ursula@domain.com",
		"a@b.co",
		"first.last+tag@sub.example.org",
		"UPPER.case@Example.COM",
	}
	for _, raw := range cases {
		email, err := ParseEmail(raw)
		if err != nil {
			t.Errorf("ParseEmail(%q) error: %v", raw, err)
			continue
		}
		if email.String() != raw {
			t.Errorf("ParseEmail(%q).String() = %q", raw, email.String())
		}
	}
}

func TestParseEmail_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"missing at symbol", "ursuladomain.com"},
		{"missing local part", "@domain.com"},
		{"missing domain", "ursula@"},
		{"whitespace in local part", "ursula le guin@domain.com"},
		{"double at", "ursula@@domain.com"},
		{"definitely not an email", "definitely-not-an-email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseEmail(tc.raw); err == nil {
				t.Errorf("ParseEmail(%q) should fail", tc.raw)
			}
		})
	}
}

func TestParseName_Valid(t *testing.T) {
	for _, raw := range []string{"le guin", "Ursula K. Le Guin", "Ursula"} {
		name, err := ParseName(raw)
		if err != nil {
			t.Errorf("ParseName(%q) error: %v", raw, err)
			continue
		}
		if name.String() != raw {
			t.Errorf("ParseName(%q).String() = %q", raw, name.String())
		}
	}
}

func TestParseName_Invalid(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("a", 257)},
		{"forward slash", "le/guin"},
		{"angle brackets", "<script>"},
		{"quotes", `le "guin"`},
		{"braces", "{guin}"},
		{"backslash", `le\guin`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseName(tc.raw); err == nil {
				t.Errorf("ParseName(%q) should fail", tc.raw)
			}
		})
	}
}

func TestParseName_MaxLengthBoundary(t *testing.T) {
	if _, err := ParseName(strings.Repeat("a", 256)); err != nil {
		t.Errorf("256-character name should be accepted: %v", err)
	}
}

func TestParseNewSubscriber(t *testing.T) {
	sub, err := ParseNewSubscriber("le guin", "ursula_le_guin@gmail.com")
	if err != nil {
		t.Fatalf("ParseNewSubscriber error: %v", err)
	}
	if sub.Name.String() != "le guin" || sub.Email.String() != "ursula_le_guin@gmail.com" {
		t.Errorf("unexpected subscriber: %+v", sub)
	}

	if _, err := ParseNewSubscriber("", "ursula@domain.com"); err == nil {
		t.Error("empty name should fail")
	}
	if _, err := ParseNewSubscriber("le guin", "not-an-email"); err == nil {
		t.Error("invalid email should fail")
	}
}
