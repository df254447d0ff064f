package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-challenge-ttl wallet auth challenge lifetime (e.g., "5m")
//	-api-key-hash bcrypt hash of the gift surface API key
//	-gift-recall-delay delay before a gift becomes recallable (e.g., "24h")
//	-disable-gift-sender-check allow gift recall by id alone
//	-wallet-verifier-url wallet signature verifier base URL
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-analytics-url analytics collector base URL
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var challengeTTL time.Duration
	var apiKeyHash string
	var giftRecallDelay time.Duration
	var disableGiftSenderCheck bool
	var walletVerifierURL string
	var requestTimeout time.Duration
	var analyticsURL string

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&challengeTTL, "challenge-ttl", 0, "Auth challenge lifetime (e.g., 5m)")
	flag.StringVar(&apiKeyHash, "api-key-hash", "", "Bcrypt hash of the gift surface API key")
	flag.DurationVar(&giftRecallDelay, "gift-recall-delay", 0, "Delay before a gift becomes recallable (e.g., 24h)")
	flag.BoolVar(&disableGiftSenderCheck, "disable-gift-sender-check", false, "Allow gift recall by id alone")
	flag.StringVar(&walletVerifierURL, "wallet-verifier-url", "", "Wallet signature verifier base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&analyticsURL, "analytics-url", "", "Analytics collector base URL")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:           tokenSignKey,
			TokenIssuer:            tokenIssuer,
			TokenDuration:          tokenDuration,
			ChallengeTTL:           challengeTTL,
			APIKeyHash:             apiKeyHash,
			GiftRecallDelay:        giftRecallDelay,
			WalletVerifierURL:      walletVerifierURL,
			DisableGiftSenderCheck: disableGiftSenderCheck,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		Analytics: Analytics{
			BaseURL: analyticsURL,
		},
		JSONFilePath: jsonConfigPath,
	}
}
