package growthbook

import (
	"log/slog"
)

// SetLogger replaces the package-level logger used by code that runs
// outside any client or repository scope.
func SetLogger(userLogger *slog.Logger) {
	logger = userLogger
}

var logger *slog.Logger = slog.Default()
