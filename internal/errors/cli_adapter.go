package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var dpe *DocPackError
	if as(err, &dpe) {
		return a.exitCodeFromDocPack(dpe)
	}

	return 1
}

// exitCodeFromDocPack maps DocPackError categories to exit codes.
func (a *CLIErrorAdapter) exitCodeFromDocPack(err *DocPackError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryNetwork:
		return 8 // External system error
	case CategoryDecode:
		return 9 // Malformed upstream data
	case CategoryRender, CategoryArchive, CategoryFileSystem:
		return 11 // Generation error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var dpe *DocPackError
	if as(err, &dpe) {
		return a.formatDocPack(dpe)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatDocPack formats a DocPackError for display.
func (a *CLIErrorAdapter) formatDocPack(err *DocPackError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	var dpe *DocPackError
	if as(err, &dpe) {
		a.logger.Error(dpe.Message,
			"category", string(dpe.Category),
			"retryable", dpe.Retryable)
	} else {
		a.logger.Error("Unclassified error", "error", err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}
