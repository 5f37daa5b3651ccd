package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"spendtrack/internal/store"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return NewFileStore(kv)
}

func TestCurrentWithoutSession(t *testing.T) {
	s := newFileStore(t)
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestSaveAndCurrent(t *testing.T) {
	s := newFileStore(t)

	in := &Session{
		Token:        "tok-1",
		RefreshToken: "ref-1",
		User:         User{Name: "Jamie", Email: "jamie@example.com"},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if *out != *in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestSetTokenReplacesOnlyToken(t *testing.T) {
	s := newFileStore(t)

	if err := s.Save(&Session{Token: "tok-1", RefreshToken: "ref-1", User: User{Email: "jamie@example.com"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SetToken("tok-2"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	out, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if out.Token != "tok-2" {
		t.Errorf("expected replaced token, got %q", out.Token)
	}
	if out.RefreshToken != "ref-1" || out.User.Email != "jamie@example.com" {
		t.Errorf("expected other fields untouched, got %+v", out)
	}
}

func TestSetTokenWithoutSession(t *testing.T) {
	s := newFileStore(t)
	if err := s.SetToken("tok-2"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s := newFileStore(t)

	if err := s.Save(&Session{Token: "tok-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Current(); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession after clear, got %v", err)
	}

	// Clearing again is a no-op.
	if err := s.Clear(); err != nil {
		t.Errorf("expected clearing an absent session to succeed, got %v", err)
	}
}

// unsignedJWT builds a structurally valid token with the given claims. The
// signature is junk; expiry parsing never verifies it.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, _ := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshaling claims: %v", err)
	}
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.%s", enc.EncodeToString(header), enc.EncodeToString(payload), enc.EncodeToString([]byte("sig")))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	sess := &Session{Token: unsignedJWT(t, map[string]any{"exp": exp.Unix()})}

	got, ok := sess.TokenExpiry()
	if !ok {
		t.Fatal("expected expiry to be extracted")
	}
	if !got.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, got)
	}
}

func TestTokenExpiryAbsent(t *testing.T) {
	tests := []struct {
		name string
		sess *Session
	}{
		{"nil session", nil},
		{"empty token", &Session{}},
		{"malformed token", &Session{Token: "not-a-jwt"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.sess.TokenExpiry(); ok {
				t.Error("expected no expiry")
			}
		})
	}
}

func TestTokenExpiryNoClaim(t *testing.T) {
	sess := &Session{Token: unsignedJWT(t, map[string]any{"sub": "u-1"})}
	if _, ok := sess.TokenExpiry(); ok {
		t.Error("expected no expiry for a token without the claim")
	}
}
