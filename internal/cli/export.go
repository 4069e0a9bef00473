package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/terraincognita07/steady/internal/db"
	"github.com/terraincognita07/steady/internal/services"
)

// RunExportCheckInsCommand writes every user's labelled check-ins to outputPath.
func RunExportCheckInsCommand(dbPath string, outputPath string, out io.Writer) (int, error) {
	outputPath = strings.TrimSpace(outputPath)
	if outputPath == "" {
		return 0, errors.New("output path is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return 0, fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	repositories := db.NewRepositories(database)
	exportService := services.NewExportService(repositories.CheckIns, repositories.HRV)

	users, err := repositories.Users.ListAll()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	rows := make([]services.ExportRow, 0)
	for _, user := range users {
		userRows, err := exportService.BuildRows(user.ID, nil, nil)
		if err != nil {
			return 0, fmt.Errorf("export user %d: %w", user.ID, err)
		}
		rows = append(rows, userRows...)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	if err := services.WriteExportCSV(file, rows); err != nil {
		_ = file.Close()
		return 0, fmt.Errorf("write csv: %w", err)
	}
	if err := file.Close(); err != nil {
		return 0, fmt.Errorf("close output file: %w", err)
	}

	absolute, err := filepath.Abs(outputPath)
	if err != nil {
		absolute = outputPath
	}
	fmt.Fprintf(out, "Export complete! %d rows written to %s\n", len(rows), absolute)
	return len(rows), nil
}
