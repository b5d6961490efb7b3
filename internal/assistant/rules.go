package assistant

import (
	"fmt"
	"sort"
	"strings"

	product "github.com/rlipkart/storefront-backend/internal/products"

	"github.com/rlipkart/storefront-backend/pkg/enums"
)

// rule is one keyword-triggered branch of the cascade. respond reports
// false to fall through to the next rule.
type rule struct {
	name    string
	match   func(lower string) bool
	respond func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool)
}

const discountPriceCeiling = 1500

var fallbackResponses = []string{
	"I can help! Try asking about:\n• Products in specific categories\n• Items within your budget\n• Best-selling items\n• Products with high ratings",
	"Not sure about that! You can ask me to:\n• Find products under a certain price\n• Show top-rated items\n• Search for specific products\n• Compare prices",
	"Let me help you find what you're looking for! You can:\n• Ask about electronics, clothing, shoes, etc.\n• Set a budget (e.g., 'under 2000')\n• Request recommendations\n• Ask for latest products",
}

func containsAny(lower string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

// defaultRules returns the cascade in evaluation order. Order is load
// bearing: "under 500" must hit the budget rule before "help" can claim
// the message.
func defaultRules() []rule {
	return []rule{
		{
			name:  "budget",
			match: func(lower string) bool { return containsAny(lower, "my budget", "under") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				budget, ok := parseNumeral(raw)
				if !ok {
					return Reply{}, false
				}
				affordable := filterProducts(catalog, func(p product.ProductDTO) bool {
					return p.Price <= budget
				})
				sort.SliceStable(affordable, func(i, j int) bool {
					return affordable[i].Rating > affordable[j].Rating
				})
				affordable = firstN(affordable, 4)
				if len(affordable) == 0 {
					return Reply{}, false
				}
				return Reply{
					Text:     formatBudgetReply(len(affordable), budget),
					Products: affordable,
				}, true
			},
		},
		{
			name:  "best_seller",
			match: func(lower string) bool { return containsAny(lower, "best seller", "most popular") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				topRated := append([]product.ProductDTO(nil), catalog...)
				sort.SliceStable(topRated, func(i, j int) bool {
					return topRated[i].Rating > topRated[j].Rating
				})
				topRated = firstN(topRated, 4)
				if len(topRated) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Our best-selling and top-rated products:", Products: topRated}, true
			},
		},
		{
			name:  "latest",
			match: func(lower string) bool { return containsAny(lower, "what's new", "latest") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				latest := firstN(catalog, 4)
				if len(latest) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Check out our latest arrivals:", Products: latest}, true
			},
		},
		{
			name:  "compare",
			match: func(lower string) bool { return strings.Contains(lower, "compare") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				cheapest := append([]product.ProductDTO(nil), catalog...)
				sort.SliceStable(cheapest, func(i, j int) bool {
					return cheapest[i].Price < cheapest[j].Price
				})
				cheapest = firstN(cheapest, 3)
				if len(cheapest) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Here are products we recommend for comparison:", Products: cheapest}, true
			},
		},
		{
			name:  "help",
			match: func(lower string) bool { return containsAny(lower, "help", "what can you do") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				return Reply{Text: helpText(ctx.Authenticated)}, true
			},
		},
		{
			name:  "discount",
			match: func(lower string) bool { return containsAny(lower, "discount", "offer", "sale") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				discounted := firstN(filterProducts(catalog, func(p product.ProductDTO) bool {
					return p.Price < discountPriceCeiling
				}), 3)
				if len(discounted) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Great savings available on these products:", Products: discounted}, true
			},
		},
		{
			name:  "smartphone",
			match: func(lower string) bool { return containsAny(lower, "smartphone", "phone", "mobile") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				phones := firstN(filterProducts(catalog, func(p product.ProductDTO) bool {
					return p.Category == enums.ProductCategoryElectronics &&
						strings.Contains(strings.ToLower(p.Name), "phone")
				}), 3)
				if len(phones) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Smartphones in our collection:", Products: phones}, true
			},
		},
		{
			name:  "fashion",
			match: func(lower string) bool { return containsAny(lower, "fashion", "clothes", "wear") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				fashion := firstN(filterProducts(catalog, func(p product.ProductDTO) bool {
					return p.Category == enums.ProductCategoryClothing
				}), 4)
				if len(fashion) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Latest fashion items:", Products: fashion}, true
			},
		},
		{
			name:  "reviews",
			match: func(lower string) bool { return containsAny(lower, "review", "rating", "quality") },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				highRated := firstN(filterProducts(catalog, func(p product.ProductDTO) bool {
					return p.Rating >= 4.5
				}), 3)
				if len(highRated) == 0 {
					return Reply{}, false
				}
				return Reply{Text: "Products with excellent reviews (4.5+ stars):", Products: highRated}, true
			},
		},
		{
			name:  "search",
			match: func(lower string) bool { return true },
			respond: func(e *Engine, raw, lower string, catalog []product.ProductDTO, ctx Context) (Reply, bool) {
				matched := searchCatalog(catalog, raw)
				if len(matched) == 0 {
					return Reply{}, false
				}
				return Reply{
					Text:     fmt.Sprintf("Found %d product(s) matching your search:", len(matched)),
					Products: firstN(matched, 4),
				}, true
			},
		},
	}
}

func helpText(authenticated bool) string {
	tail := "\n🔐 Login to unlock: Order tracking, wishlist, personalized recommendations"
	if authenticated {
		tail = "📦 Order Tracking: Check your order history\n👤 Account Info: Manage your profile"
	}
	return fmt.Sprintf(`I'm your advanced shopping assistant! Here's what I can do:

💰 Budget Recommendations: Tell me your budget and I'll find the best options
⭐ Best Sellers: Ask for most popular or top-rated items
🆕 Latest Products: I can show you what's new
🔍 Smart Search: Find exactly what you're looking for
📊 Price Comparison: Compare prices across products
🎯 Personalized Suggestions: Based on your preferences
✨ Smart Filtering: By category, price, rating
%s

Just ask me anything!`, tail)
}
