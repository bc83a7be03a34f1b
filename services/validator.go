package services

import (
	"fmt"
	"os"

	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
	"ingest-keeper/internal/models"
)

/**
 * Preflight validator
 * @description
 * - Auto-creates required directories (idempotent, re-running is a no-op)
 * - Records every missing required file and fails once at the end, so the
 *   operator sees the complete remediation list in one pass
 * - Directory creation is the only mutation preflight performs
 */
type Validator struct {
	Dirs  []string
	Files []string
}

func NewValidator(cfg *config.PreflightConfig) *Validator {
	return &Validator{
		Dirs:  cfg.Dirs,
		Files: cfg.Files,
	}
}

func (v *Validator) Validate() error {
	for _, dir := range v.Dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create required directory %s: %w", dir, err)
		}
		logger.Debugf("Required directory ok: %s", dir)
	}

	var missing []string
	for _, file := range v.Files {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			missing = append(missing, file)
			logger.Errorf("Required file missing: %s", file)
			continue
		}
		logger.Debugf("Required file ok: %s", file)
	}

	if len(missing) > 0 {
		return &models.ValidationError{MissingFiles: missing}
	}
	return nil
}
