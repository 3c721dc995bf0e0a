package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	mgr := NewJWTManager(strings.Repeat("s", 32), time.Minute)
	subject := uuid.NewString()

	token, jti, err := mgr.GenerateAccessToken(subject)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if jti == "" {
		t.Fatal("jti vazio")
	}

	claims, err := mgr.ParseAndValidate(token)
	if err != nil {
		t.Fatalf("token recém-emitido deveria validar: %v", err)
	}
	if claims.Subject != subject {
		t.Fatalf("subject inesperado: %s", claims.Subject)
	}
}

func TestJWTSegredoErrado(t *testing.T) {
	mgr := NewJWTManager(strings.Repeat("a", 32), time.Minute)
	outro := NewJWTManager(strings.Repeat("b", 32), time.Minute)

	token, _, err := mgr.GenerateAccessToken(uuid.NewString())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if _, err := outro.ParseAndValidate(token); err == nil {
		t.Fatal("assinatura com outro segredo deveria falhar")
	}
}

func TestJWTExpirado(t *testing.T) {
	mgr := NewJWTManager(strings.Repeat("s", 32), -time.Minute)

	token, _, err := mgr.GenerateAccessToken(uuid.NewString())
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	if _, err := mgr.ParseAndValidate(token); err == nil {
		t.Fatal("token expirado deveria falhar")
	}
}

func TestRefreshTokenHashDeterministico(t *testing.T) {
	raw, hashed, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if raw == hashed {
		t.Fatal("hash não pode ser o token cru")
	}
	if HashRefreshToken(raw) != hashed {
		t.Fatal("hash deveria ser determinístico")
	}

	outroRaw, _, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if outroRaw == raw {
		t.Fatal("tokens gerados devem ser distintos")
	}
}
