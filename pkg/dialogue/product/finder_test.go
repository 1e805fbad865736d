package product

import (
	"context"
	"testing"

	"shop-assistant-be/pkg/dialogue/budget"
)

type fakeSearcher struct {
	semantic []Candidate
	byBrand  []Candidate

	brandCalled   bool
	brandVariants []string
}

func (s *fakeSearcher) Search(ctx context.Context, query string, topK int) ([]Candidate, error) {
	return s.semantic, nil
}

func (s *fakeSearcher) SearchByBrand(ctx context.Context, variants []string, topK int) ([]Candidate, error) {
	s.brandCalled = true
	s.brandVariants = variants
	return s.byBrand, nil
}

// native prices are JPY * 0.60 so the JPY values come out round
func candidate(id string, score float64, name string, priceJPY int, rating float64) Candidate {
	return Candidate{
		ID:    id,
		Score: score,
		Metadata: map[string]interface{}{
			"product_id": id,
			"name":       name,
			"brand":      "HP",
			"price":      float64(priceJPY) * 0.60,
			"rating":     rating,
			"ram":        "16GB",
			"storage":    "512GB SSD",
			"processor":  "Core i5",
		},
	}
}

func newTestFinder(s Searcher) *Finder {
	return NewFinder(s, DefaultConfig(), nil)
}

func TestFindFiltersWeakScores(t *testing.T) {
	searcher := &fakeSearcher{semantic: []Candidate{
		candidate("p1", 0.05, "Weak Match", 50000, 4.5),
		candidate("p2", 0.8, "Strong Match", 60000, 4.2),
	}}

	products, err := newTestFinder(searcher).Find(context.Background(), "hp laptop", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0].ID != "p2" {
		t.Fatalf("want only the strong match, got %+v", products)
	}
}

func TestFindAppliesBudget(t *testing.T) {
	searcher := &fakeSearcher{semantic: []Candidate{
		candidate("cheap", 0.9, "Cheap", 40000, 4.0),
		candidate("mid", 0.8, "Mid", 48000, 4.6),
		candidate("pricey", 0.7, "Pricey", 90000, 4.9),
	}}

	constraint := budget.Parse("under 50000", 0.60)
	products, err := newTestFinder(searcher).Find(context.Background(), "laptop", constraint)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 2 {
		t.Fatalf("want 2 products within budget, got %d", len(products))
	}
	// below sorts price descending
	if products[0].ID != "mid" || products[1].ID != "cheap" {
		t.Errorf("wrong order: %s, %s", products[0].ID, products[1].ID)
	}
}

func TestFindAroundSortsByDistance(t *testing.T) {
	searcher := &fakeSearcher{semantic: []Candidate{
		candidate("far", 0.9, "Far", 95000, 4.0),
		candidate("near", 0.5, "Near", 78000, 4.0),
		candidate("exact", 0.4, "Exact", 80000, 4.0),
	}}

	constraint := budget.Parse("around 80000", 0.60)
	products, err := newTestFinder(searcher).Find(context.Background(), "laptop", constraint)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 3 {
		t.Fatalf("want 3 products inside the band, got %d", len(products))
	}
	if products[0].ID != "exact" || products[1].ID != "near" || products[2].ID != "far" {
		t.Errorf("wrong order: %s, %s, %s", products[0].ID, products[1].ID, products[2].ID)
	}
}

func TestFindCapsResults(t *testing.T) {
	var cands []Candidate
	for i := 0; i < 10; i++ {
		cands = append(cands, candidate(string(rune('a'+i)), 0.9, "Laptop", 50000+i*1000, 4.0))
	}
	searcher := &fakeSearcher{semantic: cands}

	products, err := newTestFinder(searcher).Find(context.Background(), "laptop", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(products) != 6 {
		t.Errorf("want 6 products max, got %d", len(products))
	}
}

func TestBrandFallback(t *testing.T) {
	searcher := &fakeSearcher{
		semantic: []Candidate{candidate("weak", 0.02, "Noise", 50000, 4.0)},
		byBrand:  []Candidate{candidate("hp1", 0.0, "HP Pavilion", 65000, 4.3)},
	}

	products, err := newTestFinder(searcher).Find(context.Background(), "show me hp laptops", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !searcher.brandCalled {
		t.Fatal("brand fallback not used")
	}
	if len(products) != 1 || products[0].ID != "hp1" {
		t.Fatalf("want the brand hit, got %+v", products)
	}

	want := map[string]bool{"HP": true, "Hp": true, "hp": true}
	for _, v := range searcher.brandVariants {
		if !want[v] {
			t.Errorf("unexpected brand variant %q", v)
		}
	}
}

func TestExtractRejectsZeroPrice(t *testing.T) {
	f := newTestFinder(&fakeSearcher{})
	rec := f.extract(Candidate{ID: "x", Score: 0.9, Metadata: map[string]interface{}{
		"name": "Freebie", "price": 0.0,
	}})
	if rec != nil {
		t.Errorf("zero-price record should be dropped, got %+v", rec)
	}
}

func TestLookupNeedsConfidentMatch(t *testing.T) {
	searcher := &fakeSearcher{semantic: []Candidate{
		candidate("vague", 0.2, "Vague", 50000, 4.0),
	}}
	rec, err := newTestFinder(searcher).Lookup(context.Background(), "thinkpad x1")
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Errorf("score 0.2 should not match, got %+v", rec)
	}

	searcher.semantic[0].Score = 0.5
	rec, err = newTestFinder(searcher).Lookup(context.Background(), "thinkpad x1")
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.ID != "vague" {
		t.Errorf("score 0.5 should match, got %+v", rec)
	}
}
