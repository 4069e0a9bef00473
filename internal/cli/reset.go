package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/security"
	"github.com/terraincognita07/steady/internal/services"
)

const temporaryPasswordLength = 12

func RunResetPasswordCommand(dbPath string, username string, out io.Writer) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("username is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	repositories := db.NewRepositories(database)
	authService := services.NewAuthService(repositories.Users)

	user, err := authService.FindByUsername(username)
	if err != nil {
		if errors.Is(err, services.ErrAuthUserNotFound) {
			return fmt.Errorf("user %s not found", services.NormalizeUsername(username))
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	if err := authService.SetPassword(user.ID, temporaryPassword, true); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
