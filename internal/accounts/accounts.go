// Package accounts loads the account configuration file and resolves
// per-account defaults such as the MUC join nickname.
package accounts

import (
	"github.com/warble-im/warble/internal/domain"
)

// Account is one configured account.
type Account struct {
	Name    string `yaml:"name"`
	JID     string `yaml:"jid"`
	MUCNick string `yaml:"muc_nick"`
}

// DefaultNick returns the configured MUC nickname, falling back to the
// localpart of the account JID.
func (a Account) DefaultNick() string {
	if a.MUCNick != "" {
		return a.MUCNick
	}
	return domain.Localpart(a.JID)
}

// Manager holds the parsed account set and knows which account the
// session runs under.
type Manager struct {
	accounts map[string]Account
	active   string
}

// NewManager builds a manager from a list of accounts and the name of
// the active one.
func NewManager(accounts []Account, active string) *Manager {
	m := &Manager{
		accounts: make(map[string]Account, len(accounts)),
		active:   active,
	}
	for _, a := range accounts {
		m.accounts[a.Name] = a
	}
	return m
}

// Lookup returns the account with the given name.
func (m *Manager) Lookup(name string) (Account, bool) {
	a, ok := m.accounts[name]
	return a, ok
}

// Active returns the account the session runs under.
func (m *Manager) Active() (Account, bool) {
	return m.Lookup(m.active)
}

// DefaultNick resolves the default MUC nickname for the active
// account. Empty when no active account is configured.
func (m *Manager) DefaultNick() string {
	a, ok := m.Active()
	if !ok {
		return ""
	}
	return a.DefaultNick()
}
