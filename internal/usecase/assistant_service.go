package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/shopassist/backend/internal/domain"
)

// Greeting opens every new chat session.
const Greeting = "Xin chào! Tôi có thể giúp gì cho bạn về các sản phẩm của chúng tôi?"

// Canned turn replies.
const (
	replyComparePrompt = "Vui lòng chỉ định rõ tên các sản phẩm bạn muốn so sánh. Ví dụ: 'So sánh Laptop HP và Laptop Dell'"
	replySelfCompare   = "Bạn không thể so sánh một sản phẩm với chính nó. Vui lòng chọn một sản phẩm khác."
	replyNoSecond      = "Tôi không tìm thấy sản phẩm thứ hai để so sánh. Vui lòng cung cấp tên sản phẩm cụ thể hơn."
	replyNoSearchHit   = "Tôi không tìm thấy sản phẩm nào phù hợp với yêu cầu của bạn. Vui lòng thử tìm kiếm với từ khóa ngắn hơn hoặc chung hơn (ví dụ: \"laptop Asus\" thay vì mã sản phẩm đầy đủ)."
	replyPriceList     = "Thông tin giá của các sản phẩm phù hợp:"
	replyNoPriceHit    = "Bạn muốn biết giá của sản phẩm nào? Vui lòng cung cấp thêm thông tin."
	replyStockList     = "Thông tin tồn kho của các sản phẩm phù hợp:"
	replyNoStockHit    = "Bạn muốn biết tình trạng tồn kho của sản phẩm nào? Vui lòng cung cấp thêm thông tin."
	replyFallback      = "Tôi có thể giúp bạn tìm kiếm sản phẩm, kiểm tra giá cả, tình trạng tồn kho, thông tin chi tiết về sản phẩm, đánh giá, người bán, lượt bán và so sánh các sản phẩm. Vui lòng hỏi cụ thể hơn."
)

const defaultReviewCacheTTL = 15 * time.Minute

// AssistantConfig holds configuration for the assistant service
type AssistantConfig struct {
	ReviewCacheTTL     time.Duration
	EnableDebugLogging bool
}

// AssistantService resolves one conversation turn at a time: classify the
// message, locate the product(s) it refers to and drive the comparison state
// machine. It keeps no conversation state of its own; the caller threads the
// session state through Respond.
type AssistantService struct {
	catalog    *CatalogService
	matcher    *MatcherService
	classifier *ClassifierService
	reviews    domain.ReviewClient
	cache      domain.CacheRepository

	reviewCacheTTL     time.Duration
	enableDebugLogging bool
}

// NewAssistantService creates an assistant service with its dependencies.
func NewAssistantService(
	catalog *CatalogService,
	matcher *MatcherService,
	classifier *ClassifierService,
	reviews domain.ReviewClient,
	cache domain.CacheRepository,
	config AssistantConfig,
) *AssistantService {
	ttl := config.ReviewCacheTTL
	if ttl <= 0 {
		ttl = defaultReviewCacheTTL
	}

	return &AssistantService{
		catalog:            catalog,
		matcher:            matcher,
		classifier:         classifier,
		reviews:            reviews,
		cache:              cache,
		reviewCacheTTL:     ttl,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Classify returns the intent of a message given the current session state.
func (s *AssistantService) Classify(message string, state domain.SessionState) domain.Intent {
	return s.classifier.Classify(message, state, s.catalog.Snapshot())
}

// Respond handles a single user message and returns the reply together with
// the next session state. Every code path produces a reply; collaborator
// failures degrade to empty data and never surface as errors.
func (s *AssistantService) Respond(ctx context.Context, message string, state domain.SessionState) (domain.Reply, domain.SessionState) {
	catalog := s.catalog.Snapshot()
	intent := s.classifier.Classify(message, state, catalog)

	if s.enableDebugLogging {
		log.Printf("[ASSIST] intent=%s pending=%v message=%q", intent, state.AwaitingSecond(), message)
	}

	switch intent {
	case domain.IntentCompare:
		return s.respondCompare(message, state, catalog)
	case domain.IntentContinueComparison:
		return s.respondContinueComparison(message, state, catalog)
	case domain.IntentProductDetail:
		return s.respondProductDetail(ctx, message, state, catalog)
	case domain.IntentReviews:
		return s.respondReviews(ctx, message, state, catalog)
	case domain.IntentSellerInfo:
		product := s.matcher.FindExact(message, catalog)
		return domain.Reply{Text: composeSellerInfo(*product), Products: []domain.Product{*product}}, clearPending(state)
	case domain.IntentSalesInfo:
		product := s.matcher.FindExact(message, catalog)
		return domain.Reply{Text: composeSalesInfo(*product), Products: []domain.Product{*product}}, clearPending(state)
	case domain.IntentSearch:
		return s.respondRanked(message, state, catalog, "", replyNoSearchHit)
	case domain.IntentPriceQuery:
		return s.respondRanked(message, state, catalog, replyPriceList, replyNoPriceHit)
	case domain.IntentStockQuery:
		return s.respondRanked(message, state, catalog, replyStockList, replyNoStockHit)
	case domain.IntentCategoryList:
		return domain.Reply{Text: composeCategoryList(catalog)}, clearPending(state)
	default:
		return domain.Reply{Text: replyFallback}, clearPending(state)
	}
}

// respondCompare handles a fresh comparison request.
func (s *AssistantService) respondCompare(message string, state domain.SessionState, catalog []domain.Product) (domain.Reply, domain.SessionState) {
	mentioned := s.matcher.FindMentioned(message, catalog)

	switch len(mentioned) {
	case 2:
		// Self-contained result: nothing pending, but keep the pair for
		// potential follow-up turns.
		state.Pending = nil
		state.LastCompared = mentioned
		return domain.Reply{
			Text:         fmt.Sprintf("Dưới đây là bảng so sánh giữa %s và %s:", mentioned[0].Name, mentioned[1].Name),
			Products:     mentioned,
			IsComparison: true,
		}, state

	case 1:
		first := mentioned[0]
		state.Pending = &first
		return domain.Reply{
			Text:     fmt.Sprintf("Tôi đã tìm thấy sản phẩm %q. Vui lòng chỉ định thêm một sản phẩm khác để so sánh.", first.Name),
			Products: mentioned,
		}, state

	default:
		return domain.Reply{Text: replyComparePrompt}, state
	}
}

// respondContinueComparison resolves the second product of a pending
// comparison. Self-comparison is rejected and the pending slot preserved so
// the user can retry.
func (s *AssistantService) respondContinueComparison(message string, state domain.SessionState, catalog []domain.Product) (domain.Reply, domain.SessionState) {
	first := *state.Pending
	second := s.matcher.FindExact(message, catalog)

	switch {
	case second != nil && second.ID != first.ID:
		pair := []domain.Product{first, *second}
		state.Pending = nil
		state.LastCompared = pair
		return domain.Reply{
			Text:         fmt.Sprintf("Dưới đây là bảng so sánh giữa %s và %s:", first.Name, second.Name),
			Products:     pair,
			IsComparison: true,
		}, state

	case second != nil:
		return domain.Reply{Text: replySelfCompare, Products: []domain.Product{first}}, state

	default:
		return domain.Reply{Text: replyNoSecond, Products: []domain.Product{first}}, state
	}
}

// respondProductDetail answers a detail question about one resolved product.
func (s *AssistantService) respondProductDetail(ctx context.Context, message string, state domain.SessionState, catalog []domain.Product) (domain.Reply, domain.SessionState) {
	product := s.matcher.FindExact(message, catalog)
	stats := s.lookupRatingStats(ctx, product.ID)

	return domain.Reply{
		Text:     composeProductDetail(*product, stats),
		Products: []domain.Product{*product},
	}, clearPending(state)
}

// respondReviews answers a review question about one resolved product.
func (s *AssistantService) respondReviews(ctx context.Context, message string, state domain.SessionState, catalog []domain.Product) (domain.Reply, domain.SessionState) {
	product := s.matcher.FindExact(message, catalog)
	reviews := s.lookupReviews(ctx, product.ID)
	stats := s.lookupRatingStats(ctx, product.ID)

	return domain.Reply{
		Text:     composeProductReviews(*product, reviews, stats),
		Products: []domain.Product{*product},
	}, clearPending(state)
}

// respondRanked answers search/price/stock questions with a ranked list.
func (s *AssistantService) respondRanked(message string, state domain.SessionState, catalog []domain.Product, foundText, emptyText string) (domain.Reply, domain.SessionState) {
	matches := s.matcher.FindRelevant(message, catalog)
	if len(matches) == 0 {
		return domain.Reply{Text: emptyText}, clearPending(state)
	}

	text := foundText
	if text == "" {
		text = fmt.Sprintf("Tôi tìm thấy %d sản phẩm phù hợp:", len(matches))
	}
	return domain.Reply{Text: text, Products: matches}, clearPending(state)
}

// clearPending abandons any in-progress comparison; an unrelated intent
// always resets the machine to idle.
func clearPending(state domain.SessionState) domain.SessionState {
	state.Pending = nil
	return state
}

// lookupReviews returns the cached first page of reviews for a product,
// fetching and memoizing on a miss. Fetch failures degrade to no reviews.
func (s *AssistantService) lookupReviews(ctx context.Context, productID int64) []domain.Review {
	key := fmt.Sprintf("reviews:%d", productID)

	if value, err := s.cache.Get(ctx, key); err == nil {
		var cached []domain.Review
		if decodeCached(value, &cached) {
			return cached
		}
	}

	reviews, err := s.reviews.FetchProductReviews(ctx, productID)
	if err != nil {
		log.Printf("[ASSIST] fetch reviews for product %d failed: %v", productID, err)
		return nil
	}

	if err := s.cache.Set(ctx, key, reviews, s.reviewCacheTTL); err != nil {
		log.Printf("[ASSIST] cache reviews for product %d failed: %v", productID, err)
	}
	return reviews
}

// lookupRatingStats returns the cached rating summary for a product,
// fetching and memoizing on a miss. Fetch failures degrade to nil.
func (s *AssistantService) lookupRatingStats(ctx context.Context, productID int64) *domain.RatingStats {
	key := fmt.Sprintf("ratings:%d", productID)

	if value, err := s.cache.Get(ctx, key); err == nil {
		var cached domain.RatingStats
		if decodeCached(value, &cached) {
			return &cached
		}
	}

	stats, err := s.reviews.FetchRatingStats(ctx, productID)
	if err != nil {
		log.Printf("[ASSIST] fetch rating stats for product %d failed: %v", productID, err)
		return nil
	}

	if err := s.cache.Set(ctx, key, stats, s.reviewCacheTTL); err != nil {
		log.Printf("[ASSIST] cache rating stats for product %d failed: %v", productID, err)
	}
	return stats
}

// decodeCached re-decodes a cached value into its typed form. The memory
// cache stores JSON-shaped values (maps and slices), so a marshal round trip
// recovers the struct.
func decodeCached(value interface{}, out interface{}) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
