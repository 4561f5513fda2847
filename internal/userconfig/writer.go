package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/paths"
)

// Save writes cfg to <configDirectory>/config.json atomically with 0600
// permissions while holding the directory lock.
func Save(configDirectory string, cfg Config) error {
	dir := paths.ExpandHome(configDirectory)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user config: %w", err)
	}
	data = append(data, '\n')

	return WithLock(dir, func() error {
		return writeAtomic(filepath.Join(dir, FileName), data)
	})
}

func writeAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".config.tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(0600); err != nil {
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	success = true
	log.Debug("userconfig: wrote %s", path)
	return nil
}
