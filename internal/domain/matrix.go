package domain

// Matrix is a square pairwise-correlation table over the same labels on both
// axes. Symmetric; the diagonal is 1.0 wherever the column varies in the
// window. A missing cell means fewer than 2 paired observations or zero
// variance.
type Matrix struct {
	Labels []string
	Coef   [][]Value
}

// NewMatrix allocates an all-missing matrix over labels.
func NewMatrix(labels []string) *Matrix {
	coef := make([][]Value, len(labels))
	for i := range coef {
		coef[i] = make([]Value, len(labels))
	}
	return &Matrix{Labels: labels, Coef: coef}
}

// At returns the coefficient for the labeled pair.
func (m *Matrix) At(a, b string) Value {
	ai, bi := m.index(a), m.index(b)
	if ai < 0 || bi < 0 {
		return Value{}
	}
	return m.Coef[ai][bi]
}

func (m *Matrix) index(label string) int {
	for i, l := range m.Labels {
		if l == label {
			return i
		}
	}
	return -1
}
