package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardUseCase "github.com/allisson/cardvault/internal/card/usecase"
)

// RunBlockExpiredCards runs one expiry sweep and reports how many cards were blocked.
func RunBlockExpiredCards(
	ctx context.Context,
	useCase cardUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	blocked, err := useCase.BlockExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to block expired cards: %w", err)
	}

	logger.Info("expired cards blocked", slog.Int64("count", blocked))

	if format == "json" {
		return writeJSON(writer, map[string]int64{"blocked": blocked})
	}
	_, err = fmt.Fprintf(writer, "Blocked %d expired card(s)\n", blocked)
	return err
}
