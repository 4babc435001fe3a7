package port

import "coincorr/internal/domain"

// Sink receives the pipeline's outputs for display. The core never renders
// anything itself.
type Sink interface {
	ShowTable(title string, t *domain.Table) error
	ShowMatrix(title string, m *domain.Matrix) error
}
