package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
)

var envLine = regexp.MustCompile(`^CARD_ENCRYPTION_KEY="([^"]+)"$`)

func TestRunCreateCardKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := cryptoService.NewKeyLoader(cryptoService.NewKMSService())

	t.Run("plain-key", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunCreateCardKey(ctx, loader, logger, &out, "", "text"))

		match := envLine.FindStringSubmatch(strings.TrimSpace(out.String()))
		require.Len(t, match, 2)
		key, err := base64.StdEncoding.DecodeString(match[1])
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})

	t.Run("kms-wrapped-key-loads-back", func(t *testing.T) {
		kmsKeyURI := "base64key://" + base64.URLEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))

		var out bytes.Buffer
		require.NoError(t, RunCreateCardKey(ctx, loader, logger, &out, kmsKeyURI, "json"))

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, kmsKeyURI, result["kms_key_uri"])

		key, err := loader.Load(ctx, result["card_encryption_key"], kmsKeyURI)
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})

	t.Run("invalid-kms-uri", func(t *testing.T) {
		err := RunCreateCardKey(ctx, loader, logger, io.Discard, "unknown://key", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate card encryption key")
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunCreateCardKey(ctx, loader, logger, io.Discard, "", "yaml")
		require.Error(t, err)
	})
}

func TestRunCreateSigningKey(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	loader := cryptoService.NewKeyLoader(cryptoService.NewKMSService())

	var out bytes.Buffer
	require.NoError(t, RunCreateSigningKey(ctx, loader, logger, &out, "json"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	key, err := base64.StdEncoding.DecodeString(result["auth_token_signing_key"])
	require.NoError(t, err)
	assert.Len(t, key, 32)
}
