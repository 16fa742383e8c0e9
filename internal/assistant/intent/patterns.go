package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// quickPattern is one (regexp, intent, extractor) triple. Matching is done on
// the lowercased, trimmed message.
type quickPattern struct {
	re      *regexp.Regexp
	intent  Intent
	extract func(groups []string) Entities
}

// quickPatterns is tried in order and the first match wins. The order is a
// hard invariant: specific command phrasings ("86 the X", price changes) must
// precede the broad sales/greeting/help catch-alls, otherwise a coincidental
// substring would misclassify them.
var quickPatterns = []quickPattern{
	{
		// 86 command (mark unavailable)
		re:     regexp.MustCompile(`86\s+(?:the\s+)?(.+)`),
		intent: MenuAvailabilityToggle,
		extract: func(g []string) Entities {
			return Entities{Availability: &AvailabilityEntities{
				Items:     []string{strings.TrimSpace(g[1])},
				Available: false,
			}}
		},
	},
	{
		// Mark available
		re:     regexp.MustCompile(`(?:mark|make)\s+(.+?)\s+(?:available|back)`),
		intent: MenuAvailabilityToggle,
		extract: func(g []string) Entities {
			return Entities{Availability: &AvailabilityEntities{
				Items:     []string{strings.TrimSpace(g[1])},
				Available: true,
			}}
		},
	},
	{
		// Price increase
		re:      regexp.MustCompile(`(?:increase|raise|up)\s+(.+?)\s+(?:by|to)\s+(?:₹|rs\.?|inr)?\s*(\d+(?:\.\d+)?)\s*(%)?`),
		intent:  MenuPriceUpdate,
		extract: priceExtractor(ModifierIncrement),
	},
	{
		// Price decrease
		re:      regexp.MustCompile(`(?:decrease|reduce|lower|drop)\s+(.+?)\s+(?:by|to)\s+(?:₹|rs\.?|inr)?\s*(\d+(?:\.\d+)?)\s*(%)?`),
		intent:  MenuPriceUpdate,
		extract: priceExtractor(ModifierDecrement),
	},
	{
		// Table list
		re:      regexp.MustCompile(`(?:show|list)\s+(?:me\s+)?(?:the\s+)?tables?`),
		intent:  TableList,
		extract: noEntities,
	},
	{
		// Menu search
		re:     regexp.MustCompile(`(?:search|find)\s+(?:for\s+)?(.+?)\s+(?:on|in)\s+(?:the\s+)?menu`),
		intent: MenuSearch,
		extract: func(g []string) Entities {
			return Entities{MenuSearch: &MenuSearchEntities{Query: strings.TrimSpace(g[1])}}
		},
	},
	{
		// Sales query
		re:      regexp.MustCompile(`(?:how'?s?\s+)?(?:today|sales|revenue|business)`),
		intent:  SalesQueryToday,
		extract: noEntities,
	},
	{
		// Top sellers
		re:      regexp.MustCompile(`(?:top|best)\s*(?:seller|selling|item)`),
		intent:  TopSellers,
		extract: noEntities,
	},
	{
		// Greeting
		re:      regexp.MustCompile(`^(?:hi|hello|hey|good\s+(?:morning|afternoon|evening))`),
		intent:  Greeting,
		extract: noEntities,
	},
	{
		// Help
		re:      regexp.MustCompile(`^(?:help|what\s+can\s+you\s+do|\?)`),
		intent:  Help,
		extract: noEntities,
	},
}

func noEntities([]string) Entities { return Entities{} }

func priceExtractor(mod Modifier) func([]string) Entities {
	return func(g []string) Entities {
		value, _ := strconv.ParseFloat(g[2], 64)
		return Entities{PriceUpdate: &PriceUpdateEntities{
			Target:       strings.TrimSpace(g[1]),
			Modifier:     mod,
			Value:        value,
			IsPercentage: g[3] != "",
		}}
	}
}

// MatchPattern classifies message text against the fixed pattern table.
// A match always carries confidence 1.0; no match reports ok=false so the
// caller falls through to the external classifier.
func MatchPattern(message string) (*Classification, bool) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return nil, false
	}

	for _, p := range quickPatterns {
		groups := p.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}
		return &Classification{
			Intent:     p.intent,
			Entities:   p.extract(groups),
			Confidence: 1.0,
		}, true
	}

	return nil, false
}
