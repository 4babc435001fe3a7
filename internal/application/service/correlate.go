package service

import (
	"math"

	"coincorr/internal/domain"
)

// Correlate computes the pairwise Pearson correlation matrix of the table's
// columns over the rows inside w.
//
// Columns are first transformed from price levels to period-over-period
// returns, r[t] = (v[t] - v[t-1]) / v[t-1]: raw levels trend, and two
// trending series look correlated no matter how independently they move.
// A return is missing when either side of the difference is missing; the
// first row of the window is always missing.
//
// Coefficients use pairwise-complete observations: each pair keeps exactly
// the rows where both columns have a defined return. Pairs with fewer than
// two such rows, or with a zero-variance column, are left missing. The
// diagonal is exactly 1.0 wherever the column varies.
func Correlate(t *domain.Table, w domain.Window) *domain.Matrix {
	ft := t.Filter(w)
	returns := pctChange(ft)

	m := domain.NewMatrix(ft.Labels)
	for i := range ft.Labels {
		for j := i; j < len(ft.Labels); j++ {
			v := pearson(returns[i], returns[j])
			if i == j && v.Valid {
				v = domain.Float(1.0)
			}
			m.Coef[i][j] = v
			m.Coef[j][i] = v
		}
	}
	return m
}

// pctChange converts each column to returns against the previous row of the
// filtered table. Column-major result, one Value per row.
func pctChange(t *domain.Table) [][]domain.Value {
	cols := make([][]domain.Value, t.NumCols())
	for j := range cols {
		cols[j] = make([]domain.Value, t.NumRows())
		for i := 1; i < t.NumRows(); i++ {
			prev, cur := t.Rows[i-1][j], t.Rows[i][j]
			if !prev.Valid || !cur.Valid || prev.Float64 == 0 {
				continue
			}
			cols[j][i] = domain.Float((cur.Float64 - prev.Float64) / prev.Float64)
		}
	}
	return cols
}

// pearson computes the correlation of two return columns over the rows where
// both are defined.
func pearson(a, b []domain.Value) domain.Value {
	var xs, ys []float64
	for i := range a {
		if a[i].Valid && b[i].Valid {
			xs = append(xs, a[i].Float64)
			ys = append(ys, b[i].Float64)
		}
	}
	n := float64(len(xs))
	if n < 2 {
		return domain.Value{}
	}

	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return domain.Value{}
	}
	return domain.Float(cov / math.Sqrt(varX*varY))
}
