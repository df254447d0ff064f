package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey: "key",
			TokenIssuer:  "notewarden",
		},
		Storage: Storage{
			DB: DB{DSN: "postgres://localhost:5432/notes"},
		},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	applyDefaults(cfg)

	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 5*time.Minute, cfg.App.ChallengeTTL)
	assert.Equal(t, 24*time.Hour, cfg.App.GiftRecallDelay)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.App.GiftRecallDelay = time.Hour
	cfg.Server.HTTPAddress = "127.0.0.1:9000"

	applyDefaults(cfg)

	assert.Equal(t, time.Hour, cfg.App.GiftRecallDelay)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().validate())
	})

	t.Run("missing DSN", func(t *testing.T) {
		cfg := validConfig()
		cfg.Storage.DB.DSN = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
	})

	t.Run("missing sign key", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.TokenSignKey = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
	})

	t.Run("missing issuer", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.TokenIssuer = ""
		assert.ErrorIs(t, cfg.validate(), ErrInvalidAppConfigs)
	})
}

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string duration", input: `"30s"`, want: 30 * time.Second},
		{name: "compound string duration", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "raw nanoseconds", input: `1000000000`, want: time.Second},
		{name: "malformed string", input: `"not-a-duration"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{
		"app": {
			"token_sign_key": "file-key",
			"token_issuer": "notewarden",
			"token_duration": "2h",
			"gift_recall_delay": "48h",
			"disable_gift_sender_check": true
		},
		"storage": {"db": {"dsn": "postgres://db:5432/notes"}},
		"server": {"http_address": "127.0.0.1:8081", "request_timeout": "10s"},
		"analytics": {"base_url": "http://collector:9000", "timeout": "3s"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.App.TokenSignKey)
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 48*time.Hour, cfg.App.GiftRecallDelay)
	assert.True(t, cfg.App.DisableGiftSenderCheck)
	assert.Equal(t, "postgres://db:5432/notes", cfg.Storage.DB.DSN)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://collector:9000", cfg.Analytics.BaseURL)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestBuild_MergesFirstNonZeroWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			App: App{TokenSignKey: "env-key", TokenIssuer: "notewarden"},
		},
		&StructuredConfig{
			App:     App{TokenSignKey: "file-key", TokenDuration: time.Hour},
			Storage: Storage{DB: DB{DSN: "postgres://db:5432/notes"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// the earlier source set the sign key; the later one only fills gaps
	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "postgres://db:5432/notes", cfg.Storage.DB.DSN)
}

func TestBuild_ValidationFailure(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App: App{TokenSignKey: "key", TokenIssuer: "notewarden"},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
