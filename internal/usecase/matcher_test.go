package usecase

import (
	"fmt"
	"testing"

	"github.com/shopassist/backend/internal/domain"
)

// testCatalog is the fixture snapshot shared by the matcher, classifier and
// assistant tests.
func testCatalog() []domain.Product {
	hpSales := 120
	iphoneSales := 47

	return []domain.Product{
		{
			ID:            1,
			Name:          "Laptop HP Pavilion 15",
			Model:         "HP-PAV-15",
			Brand:         "HP",
			Description:   "Máy tính xách tay văn phòng màn hình 15 inch",
			Category:      &domain.Category{ID: 1, Name: "Laptop"},
			Price:         15000000,
			StockQuantity: 8,
			Warranty:      "12 tháng",
			Seller:        &domain.Seller{Name: "TechZone", Rating: 4.7, ProductCount: 150, ActiveYears: "5 năm"},
			SalesCount:    &hpSales,
			SalesTrend:    "Tăng",
		},
		{
			ID:            2,
			Name:          "Laptop Dell XPS 13",
			Model:         "DELL-XPS-13",
			Brand:         "Dell",
			Description:   "Máy tính xách tay cao cấp siêu nhẹ",
			Category:      &domain.Category{ID: 1, Name: "Laptop"},
			Price:         32000000,
			StockQuantity: 3,
		},
		{
			ID:            3,
			Name:          "iPhone 15 Pro",
			Model:         "IP15-PRO",
			Brand:         "Apple",
			Description:   "Điện thoại cao cấp chip A17",
			Category:      &domain.Category{ID: 2, Name: "Điện thoại"},
			Price:         28000000,
			StockQuantity: 12,
			Seller:        &domain.Seller{Name: "Apple Store VN", Rating: 4.9},
			SalesCount:    &iphoneSales,
		},
		{
			ID:            4,
			Name:          "Tai nghe Sony WH-1000XM5",
			Model:         "SONY-XM5",
			Brand:         "Sony",
			Description:   "Tai nghe chống ồn không dây",
			Category:      &domain.Category{ID: 3, Name: "Tai nghe"},
			Price:         0,
			StockQuantity: 0,
		},
	}
}

func TestNewMatcherService(t *testing.T) {
	t.Run("uses provided max results", func(t *testing.T) {
		svc := NewMatcherService(MatcherConfig{MaxResults: 3})
		if svc.maxResults != 3 {
			t.Errorf("maxResults = %v, want 3", svc.maxResults)
		}
	})

	t.Run("uses default when zero or negative", func(t *testing.T) {
		for _, n := range []int{0, -5} {
			svc := NewMatcherService(MatcherConfig{MaxResults: n})
			if svc.maxResults != defaultMaxResults {
				t.Errorf("MaxResults=%d: maxResults = %v, want %v", n, svc.maxResults, defaultMaxResults)
			}
		}
	})
}

func TestScore(t *testing.T) {
	svc := NewMatcherService(MatcherConfig{})
	catalog := testCatalog()

	t.Run("name match scores highest weight", func(t *testing.T) {
		score := svc.Score(catalog[0], []string{"pavilion"})
		if score != weightName {
			t.Errorf("score = %v, want %v", score, weightName)
		}
	})

	t.Run("fields accumulate per keyword", func(t *testing.T) {
		// "laptop" appears in both the name and the category.
		score := svc.Score(catalog[0], []string{"laptop"})
		if score != weightName+weightCategory {
			t.Errorf("score = %v, want %v", score, weightName+weightCategory)
		}
	})

	t.Run("description match scores lowest weight", func(t *testing.T) {
		score := svc.Score(catalog[3], []string{"chống"})
		if score != weightDescription {
			t.Errorf("score = %v, want %v", score, weightDescription)
		}
	})

	t.Run("extra matching field never lowers the score", func(t *testing.T) {
		nameOnly := svc.Score(catalog[2], []string{"iphone"})
		nameAndDescription := svc.Score(catalog[2], []string{"iphone", "điện"})
		if nameAndDescription <= nameOnly {
			t.Errorf("score with extra keyword = %v, want > %v", nameAndDescription, nameOnly)
		}
	})

	t.Run("no match scores zero", func(t *testing.T) {
		if score := svc.Score(catalog[0], []string{"xyzzy"}); score != 0 {
			t.Errorf("score = %v, want 0", score)
		}
	})
}

func TestFindRelevant(t *testing.T) {
	svc := NewMatcherService(MatcherConfig{})
	catalog := testCatalog()

	t.Run("ranks by score best first", func(t *testing.T) {
		got := svc.FindRelevant("laptop dell", catalog)
		if len(got) < 2 {
			t.Fatalf("got %d products, want at least 2", len(got))
		}
		if got[0].ID != 2 {
			t.Errorf("top product ID = %d, want 2 (Dell scores name+model)", got[0].ID)
		}
	})

	t.Run("equal scores keep catalog order", func(t *testing.T) {
		got := svc.FindRelevant("laptop", catalog)
		if len(got) != 2 {
			t.Fatalf("got %d products, want 2", len(got))
		}
		if got[0].ID != 1 || got[1].ID != 2 {
			t.Errorf("order = [%d, %d], want [1, 2]", got[0].ID, got[1].ID)
		}
	})

	t.Run("caps results at max", func(t *testing.T) {
		capped := NewMatcherService(MatcherConfig{MaxResults: 2})
		var catalog []domain.Product
		for i := int64(1); i <= 6; i++ {
			catalog = append(catalog, domain.Product{ID: i, Name: fmt.Sprintf("Chuột quang %d", i)})
		}

		got := capped.FindRelevant("chuột", catalog)
		if len(got) != 2 {
			t.Errorf("got %d products, want 2", len(got))
		}
	})

	t.Run("long message tries exact phrase first", func(t *testing.T) {
		got := svc.FindRelevant("laptop hp pavilion", catalog)
		if len(got) != 1 {
			t.Fatalf("got %d products, want 1 exact phrase hit", len(got))
		}
		if got[0].ID != 1 {
			t.Errorf("product ID = %d, want 1", got[0].ID)
		}
	})

	t.Run("empty catalog yields nothing", func(t *testing.T) {
		if got := svc.FindRelevant("laptop", nil); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("message with only short tokens yields nothing", func(t *testing.T) {
		if got := svc.FindRelevant("a b", catalog); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestFindExact(t *testing.T) {
	svc := NewMatcherService(MatcherConfig{})
	catalog := testCatalog()

	t.Run("matches full product name inside message", func(t *testing.T) {
		got := svc.FindExact("thông tin Laptop Dell XPS 13 nhé", catalog)
		if got == nil || got.ID != 2 {
			t.Fatalf("got %v, want product 2", got)
		}
	})

	t.Run("falls back to model code", func(t *testing.T) {
		got := svc.FindExact("đánh giá HP-PAV-15", catalog)
		if got == nil || got.ID != 1 {
			t.Fatalf("got %v, want product 1", got)
		}
	})

	t.Run("name match wins over another product model", func(t *testing.T) {
		got := svc.FindExact("so với iPhone 15 Pro thì DELL-XPS-13 ra sao", catalog)
		if got == nil || got.ID != 3 {
			t.Fatalf("got %v, want product 3 (name pass runs before model pass)", got)
		}
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		if got := svc.FindExact("máy lạnh inverter", catalog); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("returns nil for empty message", func(t *testing.T) {
		if got := svc.FindExact("   ", catalog); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}

func TestFindMentioned(t *testing.T) {
	svc := NewMatcherService(MatcherConfig{})
	catalog := testCatalog()

	t.Run("finds two literal names", func(t *testing.T) {
		got := svc.FindMentioned("so sánh Laptop HP Pavilion 15 và Laptop Dell XPS 13", catalog)
		if len(got) != 2 {
			t.Fatalf("got %d products, want 2", len(got))
		}
		if got[0].ID != 1 || got[1].ID != 2 {
			t.Errorf("IDs = [%d, %d], want [1, 2]", got[0].ID, got[1].ID)
		}
	})

	t.Run("name and model of same product dedupe to one", func(t *testing.T) {
		got := svc.FindMentioned("Laptop HP Pavilion 15 và HP-PAV-15", catalog)
		if len(got) != 1 {
			t.Fatalf("got %d products, want 1", len(got))
		}
		if got[0].ID != 1 {
			t.Errorf("ID = %d, want 1", got[0].ID)
		}
	})

	t.Run("keyword fallback resolves conjunction parts", func(t *testing.T) {
		got := svc.FindMentioned("so sánh laptop hp và laptop dell", catalog)
		if len(got) != 2 {
			t.Fatalf("got %d products, want 2", len(got))
		}
		if got[0].ID == got[1].ID {
			t.Errorf("IDs must be distinct, got %d twice", got[0].ID)
		}
	})

	t.Run("no fallback without a conjunction", func(t *testing.T) {
		got := svc.FindMentioned("so sánh laptop", catalog)
		if len(got) != 0 {
			t.Errorf("got %d products, want 0", len(got))
		}
	})

	t.Run("never returns more than two", func(t *testing.T) {
		got := svc.FindMentioned("Laptop HP Pavilion 15 Laptop Dell XPS 13 iPhone 15 Pro", catalog)
		if len(got) != 2 {
			t.Errorf("got %d products, want 2", len(got))
		}
	})
}
