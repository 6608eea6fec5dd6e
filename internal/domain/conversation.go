package domain

// Intent is the classified purpose of a single user message. Exactly one
// intent is selected per message.
type Intent string

const (
	IntentCompare            Intent = "compare"
	IntentContinueComparison Intent = "continue_comparison"
	IntentProductDetail      Intent = "product_detail"
	IntentReviews            Intent = "reviews"
	IntentSellerInfo         Intent = "seller_info"
	IntentSalesInfo          Intent = "sales_info"
	IntentSearch             Intent = "search"
	IntentPriceQuery         Intent = "price_query"
	IntentStockQuery         Intent = "stock_query"
	IntentCategoryList       Intent = "category_list"
	IntentFallback           Intent = "fallback"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of the append-only conversation log. The log is
// kept for display by the UI layer only; the core never reads it back.
type ChatMessage struct {
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	Products     []Product `json:"products,omitempty"`
	IsComparison bool      `json:"isComparison,omitempty"`
}

// SessionState is the conversation context owned by the caller and threaded
// through the assistant core. Respond returns a new state; the core holds no
// state of its own.
type SessionState struct {
	// Messages is the display log, appended by the delivery layer.
	Messages []ChatMessage `json:"messages"`

	// Pending holds the single product awaiting a second comparison target,
	// or nil when no comparison is in progress.
	Pending *Product `json:"pending,omitempty"`

	// LastCompared caches the pair of a completed two-product comparison.
	LastCompared []Product `json:"lastCompared,omitempty"`
}

// AwaitingSecond reports whether the comparison state machine is holding a
// first product and waiting for the second.
func (s SessionState) AwaitingSecond() bool {
	return s.Pending != nil
}

// Reply is the assistant's answer for one turn: free text, an optional list
// of product cards and a flag telling the UI to render a comparison table.
type Reply struct {
	Text         string    `json:"text"`
	Products     []Product `json:"products,omitempty"`
	IsComparison bool      `json:"isComparison"`
}
