package domain

import "time"

// Product is one entry of the catalog snapshot. The snapshot is read-only for
// the assistant core; a refresh replaces it wholesale.
type Product struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Model         string     `json:"model,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	Description   string     `json:"description,omitempty"`
	Category      *Category  `json:"category,omitempty"`
	Price         float64    `json:"price"` // 0 means "contact for price"
	StockQuantity int        `json:"stockQuantity"`
	Rating        float64    `json:"rating,omitempty"` // average, 0-5
	Warranty      string     `json:"warranty,omitempty"`
	Seller        *Seller    `json:"seller,omitempty"`
	SalesCount    *int       `json:"salesCount,omitempty"`
	LastSoldDate  *time.Time `json:"lastSoldDate,omitempty"`
	SalesTrend    string     `json:"salesTrend,omitempty"`
}

// Category is the product's category descriptor.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Seller describes the shop offering a product.
type Seller struct {
	Name         string  `json:"name"`
	Rating       float64 `json:"rating,omitempty"`
	ProductCount int     `json:"productCount,omitempty"`
	ActiveYears  string  `json:"activeYears,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// ScoredProduct pairs a product with its keyword relevance score.
// Ties are broken by original catalog order.
type ScoredProduct struct {
	Product Product `json:"product"`
	Score   float64 `json:"score"`
}

// CategoryName returns the category name or "" when the product has none.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Review is a single customer review for a product.
type Review struct {
	ID               int64  `json:"id"`
	ProductID        int64  `json:"productId"`
	UserName         string `json:"userName,omitempty"`
	Rating           int    `json:"rating"`
	Comment          string `json:"comment"`
	VerifiedPurchase bool   `json:"verifiedPurchase,omitempty"`
}

// RatingStats is the aggregate rating summary for a product.
type RatingStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
