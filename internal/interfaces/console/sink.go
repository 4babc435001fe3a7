package console

import (
	"fmt"

	"coincorr/internal/application/port"
	"coincorr/internal/domain"
	"coincorr/presentation"
)

// Sink prints rendered tables and matrices to stdout.
type Sink struct {
	renderer *presentation.Renderer
}

func NewSink(renderer *presentation.Renderer) port.Sink {
	return &Sink{renderer: renderer}
}

func (s *Sink) ShowTable(title string, t *domain.Table) error {
	fmt.Println(s.renderer.RenderTable(title, t))
	return nil
}

func (s *Sink) ShowMatrix(title string, m *domain.Matrix) error {
	fmt.Println(s.renderer.RenderMatrix(title, m))
	return nil
}
