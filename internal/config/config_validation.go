// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Evermark Labs

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.PasswordHashKey == "" || cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.DefaultGracePeriodDays == 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Device.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SweepInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
