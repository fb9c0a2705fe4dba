package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoService "github.com/allisson/cardvault/internal/crypto/service"
)

// RunCreateCardKey generates a card number encryption key. With kmsKeyURI the
// key is printed wrapped by the KMS and must be deployed together with
// KMS_KEY_URI.
//
// Output format:
//   - CARD_ENCRYPTION_KEY="<base64>"
//   - KMS_KEY_URI="<uri>" (only with --kms-key-uri)
func RunCreateCardKey(
	ctx context.Context,
	keyLoader cryptoService.KeyLoader,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	encoded, err := keyLoader.Generate(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to generate card encryption key: %w", err)
	}

	logger.Info("card encryption key generated", slog.Bool("kms_wrapped", kmsKeyURI != ""))

	if format == "json" {
		result := map[string]string{"card_encryption_key": encoded}
		if kmsKeyURI != "" {
			result["kms_key_uri"] = kmsKeyURI
		}
		return writeJSON(writer, result)
	}

	_, _ = fmt.Fprintf(writer, "CARD_ENCRYPTION_KEY=%q\n", encoded)
	if kmsKeyURI != "" {
		_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%q\n", kmsKeyURI)
	}
	return nil
}

// RunCreateSigningKey generates a random AUTH_TOKEN_SIGNING_KEY.
func RunCreateSigningKey(
	ctx context.Context,
	keyLoader cryptoService.KeyLoader,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	encoded, err := keyLoader.Generate(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to generate signing key: %w", err)
	}

	logger.Info("token signing key generated")

	if format == "json" {
		return writeJSON(writer, map[string]string{"auth_token_signing_key": encoded})
	}
	_, err = fmt.Fprintf(writer, "AUTH_TOKEN_SIGNING_KEY=%q\n", encoded)
	return err
}
