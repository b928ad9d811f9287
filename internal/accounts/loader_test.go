package accounts

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAccounts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing accounts file: %v", err)
	}
	return path
}

func TestLoadAccounts(t *testing.T) {
	path := writeAccounts(t, `
active: work
accounts:
  - name: work
    jid: alice@example.org
    muc_nick: al
  - name: personal
    jid: alice@chat.example
`)

	m, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	active, ok := m.Active()
	if !ok {
		t.Fatal("Active() found no account")
	}
	if active.Name != "work" {
		t.Errorf("active account = %q, want work", active.Name)
	}
	if got := m.DefaultNick(); got != "al" {
		t.Errorf("DefaultNick() = %q, want %q", got, "al")
	}

	personal, ok := m.Lookup("personal")
	if !ok {
		t.Fatal("Lookup(personal) found nothing")
	}
	// no muc_nick: the JID localpart is the default
	if got := personal.DefaultNick(); got != "alice" {
		t.Errorf("DefaultNick() fallback = %q, want %q", got, "alice")
	}
}

func TestLoadSingleAccountBecomesActive(t *testing.T) {
	path := writeAccounts(t, `
accounts:
  - name: only
    jid: bob@example.org
`)

	m, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := m.DefaultNick(); got != "bob" {
		t.Errorf("DefaultNick() = %q, want %q", got, "bob")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "accounts:\n  - jid: a@b\n"},
		{"missing jid", "accounts:\n  - name: broken\n"},
		{"invalid yaml", "accounts: [unclosed\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAccounts(t, tt.content)
			if _, err := NewLoader(path).Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load(); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestDefaultNickWithoutActiveAccount(t *testing.T) {
	m := NewManager(nil, "")
	if got := m.DefaultNick(); got != "" {
		t.Errorf("DefaultNick() = %q, want empty", got)
	}
}
