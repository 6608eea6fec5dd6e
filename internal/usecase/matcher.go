package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/shopassist/backend/internal/domain"
)

// Keyword weights for scoring. Name and model matches are the strongest
// literal-intent signal; category is a soft signal; description is long free
// text with high false-positive risk.
const (
	weightName        = 2.0
	weightModel       = 2.0
	weightCategory    = 1.0
	weightDescription = 0.5
)

const defaultMaxResults = 5

// MatcherConfig holds configuration for the matcher service
type MatcherConfig struct {
	MaxResults         int
	EnableDebugLogging bool
}

// MatcherService locates catalog products referenced by free-text messages.
// Matching is deterministic and rule-based: substring containment plus
// additive keyword scoring, no ranking model.
type MatcherService struct {
	maxResults         int
	enableDebugLogging bool
}

// NewMatcherService creates a new matcher service with the given configuration
func NewMatcherService(config MatcherConfig) *MatcherService {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return &MatcherService{
		maxResults:         maxResults,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Score computes the relevance of a product against a set of keywords.
// Each keyword accumulates weight from every field it appears in, so the
// score never decreases when an extra field starts matching.
func (s *MatcherService) Score(product domain.Product, keywords []string) float64 {
	name := strings.ToLower(product.Name)
	model := strings.ToLower(product.Model)
	category := strings.ToLower(product.CategoryName())
	description := strings.ToLower(product.Description)

	var score float64
	for _, keyword := range keywords {
		if strings.Contains(name, keyword) {
			score += weightName
		}
		if model != "" && strings.Contains(model, keyword) {
			score += weightModel
		}
		if category != "" && strings.Contains(category, keyword) {
			score += weightCategory
		}
		if description != "" && strings.Contains(description, keyword) {
			score += weightDescription
		}
	}

	return score
}

// FindRelevant returns up to maxResults products ranked by relevance to the
// message, best first. Messages long enough to be a full product name try an
// exact-phrase match before falling back to keyword scoring; an exact phrase
// hit is higher confidence than any additive score.
func (s *MatcherService) FindRelevant(message string, catalog []domain.Product) []domain.Product {
	if len(catalog) == 0 {
		return nil
	}

	normalized := Normalize(message)

	if len(strings.Fields(normalized)) >= exactPhraseMinWords {
		if exact := s.exactPhraseMatches(normalized, catalog); len(exact) > 0 {
			return exact
		}
	}

	keywords := ExtractKeywords(message)
	if len(keywords) == 0 {
		return nil
	}

	scored := make([]domain.ScoredProduct, 0, len(catalog))
	for _, product := range catalog {
		score := s.Score(product, keywords)
		if score <= 0 {
			continue
		}
		scored = append(scored, domain.ScoredProduct{Product: product, Score: score})
	}

	// Stable sort keeps catalog order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if s.enableDebugLogging {
		log.Printf("[MATCH] %q: %d keyword(s), %d candidate(s)", message, len(keywords), len(scored))
	}

	if len(scored) > s.maxResults {
		scored = scored[:s.maxResults]
	}

	products := make([]domain.Product, len(scored))
	for i, sp := range scored {
		products[i] = sp.Product
	}
	return products
}

// exactPhraseMatches returns products whose name contains the whole message.
func (s *MatcherService) exactPhraseMatches(normalized string, catalog []domain.Product) []domain.Product {
	var matches []domain.Product
	for _, product := range catalog {
		if product.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(product.Name), normalized) {
			matches = append(matches, product)
			if len(matches) == s.maxResults {
				break
			}
		}
	}
	return matches
}

// FindExact returns the single product whose name appears literally in the
// message, or failing that whose model code does. First match in catalog
// order wins; no scoring. Returns nil when nothing matches.
func (s *MatcherService) FindExact(message string, catalog []domain.Product) *domain.Product {
	normalized := Normalize(message)
	if normalized == "" {
		return nil
	}

	for i := range catalog {
		if catalog[i].Name == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(catalog[i].Name)) {
			return &catalog[i]
		}
	}

	for i := range catalog {
		if catalog[i].Model == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(catalog[i].Model)) {
			return &catalog[i]
		}
	}

	return nil
}

// FindMentioned returns up to two distinct products referenced in one
// message, in discovery order. Literal name/model mentions are collected
// first; if fewer than two are found, the message is split on conjunction
// markers and each part is matched by keyword, taking the first unseen
// product per part.
func (s *MatcherService) FindMentioned(message string, catalog []domain.Product) []domain.Product {
	normalized := Normalize(message)

	var mentioned []domain.Product
	seen := make(map[int64]bool)

	for _, product := range catalog {
		if product.Name == "" || seen[product.ID] {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(product.Name)) ||
			(product.Model != "" && strings.Contains(normalized, strings.ToLower(product.Model))) {
			mentioned = append(mentioned, product)
			seen[product.ID] = true
		}
	}

	if len(mentioned) < 2 {
		subjects := SplitComparisonSubjects(message)
		// A single subject is just the whole message again; only split
		// requests can name a second product.
		if len(subjects) >= 2 {
			for _, subject := range subjects {
				for _, product := range s.FindRelevant(subject, catalog) {
					if seen[product.ID] {
						continue
					}
					mentioned = append(mentioned, product)
					seen[product.ID] = true
					break
				}
				if len(mentioned) >= 2 {
					break
				}
			}
		}
	}

	if len(mentioned) > 2 {
		mentioned = mentioned[:2]
	}
	return mentioned
}
