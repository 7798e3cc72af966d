package optim

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestLinspace(t *testing.T) {
	g := NewWithT(t)
	g.Expect(Linspace(0, 10, 3)).To(Equal([]float64{0, 5, 10}))
	g.Expect(Linspace(4, 9, 1)).To(Equal([]float64{4}))
}

func TestGridSearch(t *testing.T) {
	g := NewWithT(t)

	search := NewGridSearch(
		[]string{"link_distance", "spacing"},
		[][]float64{Linspace(50, 150, 5), {10, 20, 30}},
	)
	calls := 0
	best, score, err := search.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		calls++
		return math.Abs(p["link_distance"]-100) + math.Abs(p["spacing"]-20), nil
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(calls).To(Equal(15))
	g.Expect(score).To(BeZero())
	g.Expect(best).To(Equal(map[string]float64{"link_distance": 100, "spacing": 20}))
}

func TestGridSearch_SkipsFailures(t *testing.T) {
	g := NewWithT(t)

	search := NewGridSearch([]string{"x"}, [][]float64{{1, 2, 3}})
	best, score, err := search.Search(context.Background(), func(_ context.Context, p map[string]float64) (float64, error) {
		if p["x"] == 1 {
			return 0, errors.New("bad point")
		}
		return p["x"], nil
	})

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(best["x"]).To(Equal(2.0))
	g.Expect(score).To(Equal(2.0))
}

func TestGridSearch_NoCandidates(t *testing.T) {
	g := NewWithT(t)

	search := NewGridSearch([]string{"x"}, [][]float64{{1}})
	_, _, err := search.Search(context.Background(), func(context.Context, map[string]float64) (float64, error) {
		return 0, errors.New("always fails")
	})
	g.Expect(err).To(MatchError(ErrNoCandidates))
}

func TestGridSearch_Cancelled(t *testing.T) {
	g := NewWithT(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	search := NewGridSearch([]string{"x"}, [][]float64{{1, 2}})
	_, _, err := search.Search(ctx, func(context.Context, map[string]float64) (float64, error) {
		return 0, nil
	})
	g.Expect(err).To(MatchError(context.Canceled))
}
