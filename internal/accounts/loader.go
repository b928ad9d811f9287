package accounts

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// accountsFile is the root structure of accounts.yaml.
type accountsFile struct {
	Active   string    `yaml:"active"`
	Accounts []Account `yaml:"accounts"`
}

// Loader handles loading and parsing of the accounts.yaml file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the accounts file into a Manager. When the
// file names no active account and exactly one account is configured,
// that account becomes the active one.
func (l *Loader) Load() (*Manager, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts file: %w", err)
	}

	var file accountsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse accounts yaml: %w", err)
	}

	for _, a := range file.Accounts {
		if a.Name == "" {
			return nil, fmt.Errorf("account without a name in %s", l.filePath)
		}
		if a.JID == "" {
			return nil, fmt.Errorf("account %q has no jid", a.Name)
		}
	}

	active := file.Active
	if active == "" && len(file.Accounts) == 1 {
		active = file.Accounts[0].Name
	}

	return NewManager(file.Accounts, active), nil
}
