package assistant

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	product "github.com/rlipkart/storefront-backend/internal/products"
)

// numeralPattern deliberately accepts any numeral after the optional currency
// glyph, including digits embedded in unrelated text. Last mention wins.
var numeralPattern = regexp.MustCompile(`₹?(\d+)`)

// Engine classifies free-text shopper input against an ordered rule cascade
// and produces either plain text or text with a ranked product list. The
// first rule whose candidate result set is non-empty wins; empty results
// fall through to the next rule.
type Engine struct {
	rng   *rand.Rand
	rules []rule
}

// NewEngine builds an engine with the given random source for fallback
// selection. A nil source leaves fallback selection deterministic on the
// first canned response.
func NewEngine(rng *rand.Rand) *Engine {
	e := &Engine{rng: rng}
	e.rules = defaultRules()
	return e
}

// Respond runs the cascade for one user message. The catalog must be
// supplied newest first. The returned Context reflects any budget the
// message mentioned, regardless of which rule produced the reply.
func (e *Engine) Respond(input string, catalog []product.ProductDTO, ctx Context) (Reply, Context) {
	lower := strings.ToLower(input)
	next := extractBudget(input, lower, ctx)

	for _, r := range e.rules {
		if !r.match(lower) {
			continue
		}
		reply, ok := r.respond(e, input, lower, catalog, next)
		if ok {
			return reply, next
		}
	}
	return e.fallback(), next
}

// extractBudget captures a numeral following "budget" or a currency glyph
// and overwrites any prior budget. Malformed numerals are simply skipped.
func extractBudget(raw, lower string, ctx Context) Context {
	if !strings.Contains(lower, "budget") && !strings.Contains(raw, "₹") {
		return ctx
	}
	m := numeralPattern.FindStringSubmatch(raw)
	if m == nil {
		return ctx
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return ctx
	}
	ctx.Budget = &value
	return ctx
}

func parseNumeral(raw string) (int, bool) {
	m := numeralPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return value, true
}

func (e *Engine) fallback() Reply {
	idx := 0
	if e.rng != nil {
		idx = e.rng.Intn(len(fallbackResponses))
	}
	return Reply{Text: fallbackResponses[idx]}
}

// firstN copies up to n items preserving order.
func firstN(items []product.ProductDTO, n int) []product.ProductDTO {
	if len(items) > n {
		items = items[:n]
	}
	return append([]product.ProductDTO(nil), items...)
}

func filterProducts(items []product.ProductDTO, keep func(product.ProductDTO) bool) []product.ProductDTO {
	var out []product.ProductDTO
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func searchCatalog(items []product.ProductDTO, query string) []product.ProductDTO {
	term := strings.ToLower(query)
	return filterProducts(items, func(p product.ProductDTO) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category.String()), term)
	})
}

func formatBudgetReply(count, budget int) string {
	return fmt.Sprintf("Great! I found %d excellent products within your ₹%d budget, sorted by rating:", count, budget)
}
