package auth

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("secret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	parsed, err := ParseHash(hash)
	if err != nil {
		t.Fatalf("ParseHash: %v", err)
	}
	if !parsed.Verify("secret-password") {
		t.Fatal("expected password to verify")
	}
	if parsed.Verify("wrong-password") {
		t.Fatal("expected password to fail verification")
	}
}

func TestHashPasswordEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestParseHashRejectsGarbage(t *testing.T) {
	for _, phc := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$c3Vt",
		"$argon2id$v=18$m=65536,t=3,p=1$c2FsdA$c3Vt",
		"$argon2id$v=19$m=65536,t=3$c2FsdA$c3Vt",
	} {
		if _, err := ParseHash(phc); err == nil {
			t.Fatalf("expected parse error for %q", phc)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.txt")

	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	content := "# comment\n\nalice:" + hash + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write auth file: %v", err)
	}

	users, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	entry, ok := users["alice"]
	if !ok {
		t.Fatal("expected user alice")
	}
	if !entry.Verify("secret") {
		t.Fatal("expected password to verify for alice")
	}
}

func TestLoadFileDuplicateUser(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.txt")

	hash1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	hash2, err := HashPassword("secret2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	content := "alice:" + hash1 + "\nalice:" + hash2 + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write auth file: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected duplicate user error")
	}
}

func TestLoadFileRejectsPlainHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.txt")
	if err := os.WriteFile(path, []byte("bob:not-a-hash\n"), 0o600); err != nil {
		t.Fatalf("write auth file: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected hash format error")
	}
}
