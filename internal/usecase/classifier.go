package usecase

import (
	"strings"
	"unicode/utf8"

	"github.com/shopassist/backend/internal/domain"
)

// Trigger terms per intent. Vietnamese first, the English synonyms shoppers
// actually type alongside.
var (
	compareTriggers     = []string{"so sánh", "đối chiếu", "compare"}
	continuationMarkers = []string{"với", "và"}
	detailTriggers      = []string{"thông tin", "chi tiết", "mô tả"}
	reviewTriggers      = []string{"đánh giá", "review", "nhận xét"}
	sellerTriggers      = []string{"người bán", "seller", "shop"}
	salesTriggers       = []string{"lượt bán", "đã bán", "bán được"}
	searchTriggers      = []string{"sản phẩm", "hàng", "mua", "bán"}
	priceTriggers       = []string{"giá", "bao nhiêu"}
	stockTriggers       = []string{"còn hàng", "tồn kho"}
	categoryTriggers    = []string{"danh mục", "loại", "phân loại"}
)

// Search heuristic thresholds: messages longer than searchMinRuneLen look
// like a product search even without a marketplace noun, and a lone token of
// searchMinTokenRunes or more reads as a product name or model code.
const (
	searchMinRuneLen    = 10
	searchMinTokenRunes = 5
)

// classifierRule is one row of the ordered intent cascade. The first rule
// whose conditions hold wins; the order is the priority contract, so the
// table must stay auditable top to bottom.
type classifierRule struct {
	intent          domain.Intent
	terms           []string
	requiresPending bool // fires only while a comparison awaits its second product
	requiresProduct bool // fires only when the exact resolver found a subject
	heuristic       func(normalized string) bool
}

// intentRules is evaluated in order. Product-specific intents (detail,
// reviews, seller, sales) sit above the broad search heuristic so that
// "đánh giá iPhone 15" is not swallowed by search.
var intentRules = []classifierRule{
	{intent: domain.IntentCompare, terms: compareTriggers},
	{intent: domain.IntentContinueComparison, terms: continuationMarkers, requiresPending: true},
	{intent: domain.IntentProductDetail, terms: detailTriggers, requiresProduct: true},
	{intent: domain.IntentReviews, terms: reviewTriggers, requiresProduct: true},
	{intent: domain.IntentSellerInfo, terms: sellerTriggers, requiresProduct: true},
	{intent: domain.IntentSalesInfo, terms: salesTriggers, requiresProduct: true},
	{intent: domain.IntentSearch, terms: searchTriggers, heuristic: looksLikeSearch},
	{intent: domain.IntentPriceQuery, terms: priceTriggers},
	{intent: domain.IntentStockQuery, terms: stockTriggers},
	{intent: domain.IntentCategoryList, terms: categoryTriggers},
}

// ClassifierService selects exactly one intent per message.
type ClassifierService struct {
	matcher *MatcherService
}

// NewClassifierService creates a classifier backed by the given matcher.
func NewClassifierService(matcher *MatcherService) *ClassifierService {
	return &ClassifierService{matcher: matcher}
}

// Classify is a pure function of the normalized message, the current
// comparison state and the catalog snapshot. It walks the rule table in
// order and returns the first intent whose conditions hold, falling back to
// IntentFallback.
func (s *ClassifierService) Classify(message string, state domain.SessionState, catalog []domain.Product) domain.Intent {
	normalized := Normalize(message)
	if normalized == "" {
		return domain.IntentFallback
	}

	// The exact resolver result is shared by rules 3-6; resolve lazily so
	// compare/continuation turns skip the catalog scan.
	exactResolved := false
	var exact *domain.Product
	hasExact := func() bool {
		if !exactResolved {
			exact = s.matcher.FindExact(normalized, catalog)
			exactResolved = true
		}
		return exact != nil
	}

	for _, rule := range intentRules {
		if rule.requiresPending && !state.AwaitingSecond() {
			continue
		}
		if rule.requiresProduct && !hasExact() {
			continue
		}
		if containsAny(normalized, rule.terms) {
			return rule.intent
		}
		if rule.heuristic != nil && rule.heuristic(normalized) {
			return rule.intent
		}
	}

	return domain.IntentFallback
}

// looksLikeSearch is the broad product-search heuristic: a message long
// enough to describe a product, or a lone token long enough to be a product
// name or model code.
func looksLikeSearch(normalized string) bool {
	if utf8.RuneCountInString(normalized) > searchMinRuneLen {
		return true
	}
	tokens := strings.Fields(normalized)
	return len(tokens) == 1 && utf8.RuneCountInString(tokens[0]) >= searchMinTokenRunes
}
