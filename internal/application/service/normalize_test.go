package service

import (
	"math"
	"testing"

	"coincorr/internal/domain"
)

func TestNormalizeDiscardsInvalidValues(t *testing.T) {
	s := domain.NewSeries([]domain.Point{
		{Time: day(1), Value: domain.Float(450.5)},
		{Time: day(2), Value: domain.Float(0)},
		{Time: day(3), Value: domain.Float(-3)},
		{Time: day(4), Value: domain.Float(math.NaN())},
		{Time: day(5), Value: domain.Float(451.2)},
	})

	out := Normalize("KRAKEN", s)
	if out.Len() != 5 {
		t.Fatalf("expected 5 points, got %d", out.Len())
	}
	for _, i := range []int{1, 2, 3} {
		if out.Points[i].Value.Valid {
			t.Errorf("point %d should be missing, got %+v", i, out.Points[i].Value)
		}
	}
	if v := out.Points[0].Value; !v.Valid || v.Float64 != 450.5 {
		t.Errorf("point 0 should survive, got %+v", v)
	}
	if v := out.Points[4].Value; !v.Valid || v.Float64 != 451.2 {
		t.Errorf("point 4 should survive, got %+v", v)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	s := domain.NewSeries([]domain.Point{
		{Time: day(1), Value: domain.Float(100)},
		{Time: day(2), Value: domain.Float(0)},
		{Time: day(3)},
	})

	once := Normalize("X", s)
	twice := Normalize("X", once)
	if once.Len() != twice.Len() {
		t.Fatalf("lengths differ: %d vs %d", once.Len(), twice.Len())
	}
	for i := range once.Points {
		if once.Points[i] != twice.Points[i] {
			t.Errorf("point %d differs after second pass: %+v vs %+v", i, once.Points[i], twice.Points[i])
		}
	}
}

func TestNormalizeKeepsMissingMissing(t *testing.T) {
	s := domain.NewSeries([]domain.Point{
		{Time: day(1)},
		{Time: day(2), Value: domain.Float(5)},
	})
	out := Normalize("X", s)
	if out.Points[0].Value.Valid {
		t.Errorf("missing point must stay missing, got %+v", out.Points[0].Value)
	}
}
