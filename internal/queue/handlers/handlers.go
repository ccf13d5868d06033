package handlers

import (
	"log/slog"

	"github.com/dwellify/dwellify/internal/usecase"
)

// Handlers contains all queue task handlers
type Handlers struct {
	usecase usecase.Usecase
	logger  *slog.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(uc usecase.Usecase, logger *slog.Logger) *Handlers {
	return &Handlers{
		usecase: uc,
		logger:  logger,
	}
}
