package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"catalant-monitor/internal/config"
)

const (
	// “Service” groups this app’s secrets in the OS keychain.
	KeyringService = "catalant-monitor"
)

// Get looks a password up in the keychain first, then falls back to the
// given environment variable. CI runs have no keychain; local runs
// shouldn't need plaintext env vars.
func Get(account, envVar string) (string, error) {
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if envVar != "" {
		if pw := os.Getenv(envVar); strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	return "", fmt.Errorf("password for %s not found (set it in the keychain or via %s)", account, envVar)
}

func Set(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func Delete(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

func PortalAccount(cfg config.Config) string {
	return fmt.Sprintf("portal:%s", cfg.Portal.Email)
}

func SMTPAccount(cfg config.Config) string {
	return fmt.Sprintf("smtp:%s@%s", cfg.SMTP.Username, cfg.SMTP.Host)
}
