package commands

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"strings"

	userUseCase "github.com/allisson/cardvault/internal/user/usecase"
)

// CreateUserParams holds the create-user flag values.
type CreateUserParams struct {
	Username string
	FullName string
	Email    string
	Roles    string
	Password string
}

// RunCreateUser creates a user account. When no password is given it is read
// as a single line from io.Reader.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	io IOTuple,
	params CreateUserParams,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password := params.Password
	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	logger.Info("creating new user", slog.String("username", params.Username))

	user, err := useCase.Create(ctx, userUseCase.CreateUserInput{
		Username: params.Username,
		FullName: params.FullName,
		Email:    params.Email,
		Password: password,
		Roles:    parseRoles(params.Roles),
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		err = writeJSON(io.Writer, map[string]any{
			"id":       user.ID.String(),
			"username": user.Username,
			"roles":    user.Roles,
		})
	} else {
		_, err = fmt.Fprintf(io.Writer, "User created successfully!\nID: %s\nUsername: %s\nRoles: %s\n",
			user.ID, user.Username, strings.Join(user.Roles, ", "))
	}
	if err != nil {
		return err
	}

	logger.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)
	return nil
}

func promptForPassword(io IOTuple) (string, error) {
	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// parseRoles splits a comma separated role list, dropping blanks.
func parseRoles(value string) []string {
	roles := []string{}
	for _, role := range strings.Split(value, ",") {
		role = strings.ToUpper(strings.TrimSpace(role))
		if role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
