// SPDX-License-Identifier: Apache-2.0

package config

// Defaults applied after merging when no source set a value.
const (
	defaultTokenDuration   = "24h"
	defaultChallengeTTL    = "5m"
	defaultGiftRecallDelay = "24h"
	defaultRequestTimeout  = "30s"
	defaultHTTPAddress     = "0.0.0.0:8080"
)

// applyDefaults fills zero-valued fields of the merged configuration
// with sane defaults. Duration constants are parsed at startup; they
// are compile-time literals and always valid.
func applyDefaults(cfg *StructuredConfig) {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = mustDuration(defaultTokenDuration)
	}
	if cfg.App.ChallengeTTL == 0 {
		cfg.App.ChallengeTTL = mustDuration(defaultChallengeTTL)
	}
	if cfg.App.GiftRecallDelay == 0 {
		cfg.App.GiftRecallDelay = mustDuration(defaultGiftRecallDelay)
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = mustDuration(defaultRequestTimeout)
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
}

// validate checks that the final merged [StructuredConfig] satisfies
// all application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
