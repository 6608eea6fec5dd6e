package catalogapi

import (
	"time"

	"github.com/shopassist/backend/internal/domain"
)

// Wire DTOs for the storefront API. The backend serves Spring-style
// paginated envelopes with a "content" array.

type productPage struct {
	Content       []productDTO `json:"content"`
	TotalElements int          `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Number        int          `json:"number"`
}

type productDTO struct {
	ID            int64        `json:"id"`
	Name          string       `json:"name"`
	Model         string       `json:"model"`
	Brand         string       `json:"brand"`
	Description   string       `json:"description"`
	Price         float64      `json:"price"`
	StockQuantity int          `json:"stockQuantity"`
	Rating        float64      `json:"rating"`
	Warranty      string       `json:"warranty"`
	Category      *categoryDTO `json:"category"`
	Seller        *sellerDTO   `json:"seller"`
	SalesCount    *int         `json:"salesCount"`
	LastSoldDate  string       `json:"lastSoldDate"`
	SalesTrend    string       `json:"salesTrend"`
}

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type sellerDTO struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"rating"`
	ProductCount int     `json:"productCount"`
	ActiveYears  string  `json:"activeYears"`
	Description  string  `json:"description"`
}

type reviewPage struct {
	Content []reviewDTO `json:"content"`
}

type reviewDTO struct {
	ID               int64  `json:"id"`
	ProductID        int64  `json:"productId"`
	UserName         string `json:"userName"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	VerifiedPurchase bool   `json:"verifiedPurchase"`
}

type ratingStatsDTO struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// timestamp layouts the storefront emits, most specific first.
var lastSoldLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// mapProducts converts API product DTOs to domain products, preserving the
// stored catalog order.
func mapProducts(dtos []productDTO) []domain.Product {
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, mapProduct(dto))
	}
	return products
}

// mapProduct converts one API product DTO to the domain model.
func mapProduct(dto productDTO) domain.Product {
	product := domain.Product{
		ID:            dto.ID,
		Name:          dto.Name,
		Model:         dto.Model,
		Brand:         dto.Brand,
		Description:   dto.Description,
		Price:         dto.Price,
		StockQuantity: dto.StockQuantity,
		Rating:        dto.Rating,
		Warranty:      dto.Warranty,
		SalesCount:    dto.SalesCount,
		SalesTrend:    dto.SalesTrend,
	}

	if dto.Category != nil {
		product.Category = &domain.Category{ID: dto.Category.ID, Name: dto.Category.Name}
	}
	if dto.Seller != nil {
		product.Seller = &domain.Seller{
			Name:         dto.Seller.Name,
			Rating:       dto.Seller.Rating,
			ProductCount: dto.Seller.ProductCount,
			ActiveYears:  dto.Seller.ActiveYears,
			Description:  dto.Seller.Description,
		}
	}
	if dto.LastSoldDate != "" {
		if ts := parseLastSold(dto.LastSoldDate); ts != nil {
			product.LastSoldDate = ts
		}
	}

	return product
}

// parseLastSold tries the known storefront timestamp layouts; an
// unparseable value is dropped rather than failing the whole snapshot.
func parseLastSold(value string) *time.Time {
	for _, layout := range lastSoldLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	return nil
}

// mapReviews converts API review DTOs to domain reviews.
func mapReviews(dtos []reviewDTO) []domain.Review {
	reviews := make([]domain.Review, 0, len(dtos))
	for _, dto := range dtos {
		reviews = append(reviews, domain.Review{
			ID:               dto.ID,
			ProductID:        dto.ProductID,
			UserName:         dto.UserName,
			Rating:           dto.Rating,
			Comment:          dto.Comment,
			VerifiedPurchase: dto.VerifiedPurchase,
		})
	}
	return reviews
}
