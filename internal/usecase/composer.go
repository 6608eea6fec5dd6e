package usecase

import (
	"fmt"
	"strings"

	"github.com/shopassist/backend/internal/domain"
)

// Reply text builders. These compose the free-text half of a Reply; the
// attached product list and comparison flag are set by the assistant service.
// All texts are in Vietnamese, matching the storefront audience.

const maxQuotedReviews = 3

// composeProductDetail builds the detailed product information text.
func composeProductDetail(product domain.Product, stats *domain.RatingStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📌 Thông tin chi tiết về sản phẩm: %s\n\n", product.Name)
	fmt.Fprintf(&b, "📝 Mô tả: %s\n\n", orDefault(product.Description, "Không có mô tả"))
	fmt.Fprintf(&b, "💰 Giá: %s\n", formatPrice(product.Price))
	fmt.Fprintf(&b, "🏷️ Danh mục: %s\n", orDefault(product.CategoryName(), "Chưa phân loại"))

	if product.StockQuantity > 0 {
		fmt.Fprintf(&b, "📦 Tồn kho: %d sản phẩm\n", product.StockQuantity)
	} else {
		b.WriteString("📦 Tồn kho: Đang cập nhật\n")
	}

	if product.Model != "" {
		fmt.Fprintf(&b, "🔢 Mã model: %s\n", product.Model)
	}
	if product.Brand != "" {
		fmt.Fprintf(&b, "🏭 Thương hiệu: %s\n", product.Brand)
	}
	if stats != nil {
		fmt.Fprintf(&b, "⭐ Đánh giá trung bình: %.1f (%d đánh giá)\n", stats.AverageRating, stats.TotalReviews)
	}
	if product.Seller != nil {
		fmt.Fprintf(&b, "\n👤 Người bán: %s\n", orDefault(product.Seller.Name, "Không có thông tin"))
	}
	if product.Warranty != "" {
		fmt.Fprintf(&b, "\n🔧 Bảo hành: %s\n", product.Warranty)
	}

	return b.String()
}

// composeProductReviews builds the review summary text.
func composeProductReviews(product domain.Product, reviews []domain.Review, stats *domain.RatingStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Đánh giá về sản phẩm: %s\n\n", product.Name)

	if stats != nil && stats.TotalReviews > 0 {
		fmt.Fprintf(&b, "⭐ Đánh giá trung bình: %.1f (%d đánh giá)\n\n", stats.AverageRating, stats.TotalReviews)
	} else {
		b.WriteString("⭐ Chưa có đánh giá cho sản phẩm này.\n\n")
	}

	if len(reviews) == 0 {
		b.WriteString("Chưa có đánh giá nào cho sản phẩm này.\n")
		return b.String()
	}

	b.WriteString("📝 Một số đánh giá gần đây:\n\n")
	for i, review := range reviews {
		if i == maxQuotedReviews {
			break
		}
		fmt.Fprintf(&b, "%d. %s - %d⭐\n", i+1, orDefault(review.UserName, "Khách hàng"), review.Rating)
		fmt.Fprintf(&b, "   %q\n", review.Comment)
		if review.VerifiedPurchase {
			b.WriteString("   ✅ Đã mua hàng\n")
		}
		b.WriteString("\n")
	}
	if len(reviews) > maxQuotedReviews {
		fmt.Fprintf(&b, "... và %d đánh giá khác.\n", len(reviews)-maxQuotedReviews)
	}

	return b.String()
}

// composeSellerInfo builds the seller information text.
func composeSellerInfo(product domain.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "👤 Thông tin người bán sản phẩm: %s\n\n", product.Name)

	seller := product.Seller
	if seller == nil {
		b.WriteString("Không có thông tin về người bán sản phẩm này.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Tên shop: %s\n", orDefault(seller.Name, "Không có thông tin"))
	if seller.Rating > 0 {
		fmt.Fprintf(&b, "Đánh giá shop: %.1f ⭐\n", seller.Rating)
	} else {
		b.WriteString("Đánh giá shop: Chưa có ⭐\n")
	}
	if seller.ProductCount > 0 {
		fmt.Fprintf(&b, "Sản phẩm đang bán: %d\n", seller.ProductCount)
	} else {
		b.WriteString("Sản phẩm đang bán: Không có thông tin\n")
	}
	fmt.Fprintf(&b, "Thời gian hoạt động: %s\n", orDefault(seller.ActiveYears, "Không có thông tin"))
	if seller.Description != "" {
		fmt.Fprintf(&b, "\nGiới thiệu: %s\n", seller.Description)
	}

	return b.String()
}

// composeSalesInfo builds the sales figures text.
func composeSalesInfo(product domain.Product) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Thông tin lượt bán sản phẩm: %s\n\n", product.Name)

	if product.SalesCount == nil {
		b.WriteString("Chưa có thông tin về lượt bán của sản phẩm này.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Đã bán: %d sản phẩm\n", *product.SalesCount)
	if product.LastSoldDate != nil {
		fmt.Fprintf(&b, "Lần bán gần nhất: %s\n", product.LastSoldDate.Format("02/01/2006"))
	}
	if product.SalesTrend != "" {
		fmt.Fprintf(&b, "Xu hướng bán: %s\n", product.SalesTrend)
	}

	return b.String()
}

// composeCategoryList builds the distinct category listing text.
func composeCategoryList(catalog []domain.Product) string {
	seen := make(map[string]bool)
	var categories []string
	for _, product := range catalog {
		name := product.CategoryName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		categories = append(categories, name)
	}

	if len(categories) == 0 {
		return "Hiện tại chúng tôi chưa có thông tin về danh mục sản phẩm."
	}

	var b strings.Builder
	b.WriteString("Chúng tôi có các danh mục sản phẩm sau:\n\n")
	for i, category := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s", category)
	}
	return b.String()
}

// formatPrice renders a price in Vietnamese đồng with dot-grouped thousands,
// or the contact-for-price text when absent.
func formatPrice(price float64) string {
	if price <= 0 {
		return "Liên hệ"
	}
	return groupThousands(int64(price)) + "đ"
}

// groupThousands inserts '.' separators per vi-VN locale, e.g. 15000000 ->
// "15.000.000".
func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
