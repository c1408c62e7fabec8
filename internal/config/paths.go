package config

import (
	"os"
	"path/filepath"
)

// defaultCredentialsPath resolves where the token/username store lives
// when nothing else is configured.
func defaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".voucheradmin", "credentials.json")
	}
	return filepath.Join(dir, "voucheradmin", "credentials.json")
}
