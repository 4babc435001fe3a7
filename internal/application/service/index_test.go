package service

import (
	"testing"

	"coincorr/internal/domain"
)

func TestBuildIndexMeansDefinedCells(t *testing.T) {
	table, err := Merge(
		[]domain.Series{daily(1, 100, 110), daily(1, 200, 210)},
		[]string{"A", "B"},
	)
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	idx := BuildIndex(table)
	if idx.Len() != 2 {
		t.Fatalf("expected 2 points, got %d", idx.Len())
	}
	if v := idx.Points[0].Value; !v.Valid || v.Float64 != 150 {
		t.Errorf("expected mean 150, got %+v", v)
	}
	if v := idx.Points[1].Value; !v.Valid || v.Float64 != 160 {
		t.Errorf("expected mean 160, got %+v", v)
	}
}

func TestBuildIndexSkipsMissingCells(t *testing.T) {
	// B has no data on 01-01, both missing on 01-03
	a := domain.NewSeries([]domain.Point{
		{Time: day(1), Value: domain.Float(100)},
		{Time: day(2), Value: domain.Float(110)},
		{Time: day(3)},
	})
	b := domain.NewSeries([]domain.Point{
		{Time: day(2), Value: domain.Float(210)},
		{Time: day(3)},
	})
	table, err := Merge([]domain.Series{a, b}, []string{"A", "B"})
	if err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	idx := BuildIndex(table)

	// single defined cell: mean of one value, not value/2
	if v := idx.Points[0].Value; !v.Valid || v.Float64 != 100 {
		t.Errorf("single defined column: expected 100, got %+v", v)
	}
	if v := idx.Points[1].Value; !v.Valid || v.Float64 != 160 {
		t.Errorf("expected mean 160, got %+v", v)
	}
	if idx.Points[2].Value.Valid {
		t.Errorf("all-missing row must yield a missing index value")
	}
}
