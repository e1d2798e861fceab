package main

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"catalant-monitor/internal/config"
	"catalant-monitor/internal/secrets"
)

// runSecret handles `monitor secret set|delete portal|smtp`. Passwords
// are prompted, not taken as arguments, so they stay out of shell
// history.
func runSecret(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: monitor secret set|delete portal|smtp")
	}

	config.LoadDotenv()

	dataDir := os.Getenv("MONITOR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	var account string
	switch args[1] {
	case "portal":
		account = secrets.PortalAccount(cfg)
	case "smtp":
		account = secrets.SMTPAccount(cfg)
	default:
		return fmt.Errorf("unknown secret %q (want portal or smtp)", args[1])
	}

	switch args[0] {
	case "set":
		fmt.Fprintf(os.Stderr, "password for %s: ", account)
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		return secrets.Set(account, string(pw))
	case "delete":
		return secrets.Delete(account)
	default:
		return fmt.Errorf("unknown action %q (want set or delete)", args[0])
	}
}
