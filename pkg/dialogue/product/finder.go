package product

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"shop-assistant-be/pkg/dialogue/budget"
	"shop-assistant-be/pkg/nlu"
	"shop-assistant-be/pkg/store"
)

// Candidate is a raw vector search hit before coercion into a
// ProductRecord. Metadata values arrive untyped from the index.
type Candidate struct {
	ID       string
	Score    float64
	Metadata map[string]interface{}
}

// Searcher is the catalog index port. SearchByBrand is the metadata
// fallback used when semantic scores are too weak.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]Candidate, error)
	SearchByBrand(ctx context.Context, brandVariants []string, topK int) ([]Candidate, error)
}

type Config struct {
	TopK           int     // candidates fetched per semantic search
	BrandTopK      int     // candidates fetched in the brand fallback
	ScoreThreshold float64 // minimum semantic score to keep a hit
	MatchThreshold float64 // minimum score for a by-name lookup
	MaxResults     int     // products returned to the user
	NativePerYen   float64 // catalog native currency per 1 JPY
}

func DefaultConfig() Config {
	return Config{
		TopK:           50,
		BrandTopK:      20,
		ScoreThreshold: 0.1,
		MatchThreshold: 0.3,
		MaxResults:     6,
		NativePerYen:   0.60,
	}
}

// Finder turns a search query plus an optional budget constraint into
// a ranked, filtered product list.
type Finder struct {
	searcher Searcher
	cfg      Config
	logger   *log.Logger
}

func NewFinder(searcher Searcher, cfg Config, logger *log.Logger) *Finder {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TopK == 0 {
		cfg = DefaultConfig()
	}
	return &Finder{searcher: searcher, cfg: cfg, logger: logger}
}

// Find runs the semantic search, filters by score and budget, and
// ranks the survivors. When nothing survives it retries with the brand
// metadata fallback before giving up with an empty slice.
func (f *Finder) Find(ctx context.Context, query string, constraint *budget.Constraint) ([]store.ProductRecord, error) {
	candidates, err := f.searcher.Search(ctx, query, f.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	var products []store.ProductRecord
	for _, cand := range candidates {
		if cand.Score <= f.cfg.ScoreThreshold {
			continue
		}
		rec := f.extract(cand)
		if rec == nil {
			continue
		}
		if !constraint.Allows(float64(rec.Price)) {
			continue
		}
		products = append(products, *rec)
	}

	if len(products) > 0 {
		f.rank(products, constraint, false)
		return f.cap(products), nil
	}

	return f.findByBrand(ctx, query, constraint)
}

// findByBrand is the metadata fallback: detect a brand in the query
// and filter the index on every capitalization variant the catalog
// might store.
func (f *Finder) findByBrand(ctx context.Context, query string, constraint *budget.Constraint) ([]store.ProductRecord, error) {
	brand := nlu.DetectBrand(query)
	if brand == "" {
		return nil, nil
	}

	variants := brandVariants(brand)
	f.logger.Printf("[FINDER] brand fallback for %q, variants %v", brand, variants)

	candidates, err := f.searcher.SearchByBrand(ctx, variants, f.cfg.BrandTopK)
	if err != nil {
		return nil, fmt.Errorf("brand search: %w", err)
	}

	var products []store.ProductRecord
	for _, cand := range candidates {
		rec := f.extract(cand)
		if rec == nil {
			continue
		}
		if !constraint.Allows(float64(rec.Price)) {
			continue
		}
		products = append(products, *rec)
	}

	f.rank(products, constraint, true)
	return f.cap(products), nil
}

// Lookup finds a single product by (approximate) name for comparisons.
// Only a confident match counts.
func (f *Finder) Lookup(ctx context.Context, name string) (*store.ProductRecord, error) {
	candidates, err := f.searcher.Search(ctx, name, 3)
	if err != nil {
		return nil, fmt.Errorf("lookup search: %w", err)
	}
	for _, cand := range candidates {
		if cand.Score <= f.cfg.MatchThreshold {
			continue
		}
		if rec := f.extract(cand); rec != nil {
			return rec, nil
		}
	}
	return nil, nil
}

func (f *Finder) cap(products []store.ProductRecord) []store.ProductRecord {
	if len(products) > f.cfg.MaxResults {
		return products[:f.cfg.MaxResults]
	}
	return products
}

// rank orders products by the budget constraint. Without a constraint,
// semantic results go by score and metadata results by rating.
func (f *Finder) rank(products []store.ProductRecord, constraint *budget.Constraint, metadataPath bool) {
	switch {
	case constraint != nil && constraint.Kind == budget.Below:
		// Most laptop for the money first
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Price != products[j].Price {
				return products[i].Price > products[j].Price
			}
			return products[i].Rating > products[j].Rating
		})
	case constraint != nil && constraint.Kind == budget.Above:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Price != products[j].Price {
				return products[i].Price < products[j].Price
			}
			return products[i].Rating > products[j].Rating
		})
	case constraint != nil && constraint.Kind == budget.Around:
		target := constraint.Target
		sort.SliceStable(products, func(i, j int) bool {
			di := math.Abs(float64(products[i].Price) - target)
			dj := math.Abs(float64(products[j].Price) - target)
			if di != dj {
				return di < dj
			}
			return products[i].Rating > products[j].Rating
		})
	case metadataPath:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Rating != products[j].Rating {
				return products[i].Rating > products[j].Rating
			}
			return products[i].Price < products[j].Price
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			if products[i].Score != products[j].Score {
				return products[i].Score > products[j].Score
			}
			return products[i].Rating > products[j].Rating
		})
	}
}

// extract coerces untyped index metadata into a ProductRecord and
// converts the native price into JPY. Returns nil when the record is
// unusable (no positive price).
func (f *Finder) extract(cand Candidate) *store.ProductRecord {
	meta := cand.Metadata

	nativePrice := safeFloat(firstOf(meta, "price"), 0)
	jpyPrice := 0
	if nativePrice > 0 && f.cfg.NativePerYen > 0 {
		jpyPrice = int(math.Round(nativePrice / f.cfg.NativePerYen))
	}
	if jpyPrice <= 0 {
		return nil
	}

	colors := safeString(firstOf(meta, "colors", "color", "available_colors"), "Not specified")
	if colors != "Not specified" {
		colors = strings.NewReplacer(`"`, "", "'", "", "[", "", "]", "").Replace(colors)
		colors = strings.TrimSpace(colors)
	}

	id := safeString(firstOf(meta, "product_id", "id"), "")
	if id == "" {
		id = "prod-" + cand.ID
	}

	processor := safeString(meta["processor"], "Not specified")
	ram := safeString(meta["ram"], "Not specified")
	storage := safeString(meta["storage"], "Not specified")

	description := fmt.Sprintf("%s • %s • %s", processor, ram, storage)
	if os := safeString(meta["os"], ""); os != "" {
		description += " • " + os
	}

	return &store.ProductRecord{
		ID:          id,
		Brand:       safeString(meta["brand"], "Unknown"),
		Name:        safeString(meta["name"], "Unknown Laptop"),
		Price:       jpyPrice,
		PriceNative: nativePrice,
		RAM:         ram,
		Storage:     storage,
		Processor:   processor,
		Colors:      colors,
		Rating:      safeFloat(meta["rating"], 4.0),
		Reviews:     safeInt(firstOf(meta, "no_of_reviews", "no_of_ratings")),
		ImageURL:    safeString(meta["img_link"], ""),
		Description: description,
		Score:       cand.Score,
	}
}

func brandVariants(brand string) []string {
	seen := map[string]bool{}
	var variants []string
	for _, v := range []string{strings.ToUpper(brand), capitalize(brand), strings.ToLower(brand)} {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func firstOf(meta map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := meta[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

func safeFloat(v interface{}, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(val), "%f", &f); err == nil {
			return f
		}
	}
	return def
}

func safeInt(v interface{}) int {
	return int(safeFloat(v, 0))
}

func safeString(v interface{}, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
