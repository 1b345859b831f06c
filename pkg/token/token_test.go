package token

import (
	"errors"
	"testing"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("1", "admin", "admin@stock.com", "admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "1" || claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "go-stockbill" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) err = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	tok, err := Generate("1", "admin", "admin@stock.com", "admin")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tampered := tok[:len(tok)-2] + "xx"
	if _, err := Validate(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token accepted: %v", err)
	}
}
