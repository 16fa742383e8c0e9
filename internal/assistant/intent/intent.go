// Package intent defines the closed intent set, the typed entity shapes per
// intent, and the deterministic pattern matcher that classifies common
// phrasings without any external dependency.
package intent

// Intent is the closed-set classification of a user utterance's purpose.
type Intent string

const (
	MenuPriceUpdate        Intent = "MENU_PRICE_UPDATE"
	MenuAvailabilityToggle Intent = "MENU_AVAILABILITY_TOGGLE"
	SalesQueryToday        Intent = "SALES_QUERY_TODAY"
	TopSellers             Intent = "TOP_SELLERS"
	TableList              Intent = "TABLE_LIST"
	MenuSearch             Intent = "MENU_SEARCH"
	Greeting               Intent = "GREETING"
	Help                   Intent = "HELP"
	Unknown                Intent = "UNKNOWN"
)

// All lists every member of the closed set, Unknown included.
var All = []Intent{
	MenuPriceUpdate,
	MenuAvailabilityToggle,
	SalesQueryToday,
	TopSellers,
	TableList,
	MenuSearch,
	Greeting,
	Help,
	Unknown,
}

// Valid reports whether i is a member of the closed set.
func (i Intent) Valid() bool {
	for _, known := range All {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string { return string(i) }

// Modifier is the direction of a price change.
type Modifier string

const (
	ModifierIncrement Modifier = "INCREMENT"
	ModifierDecrement Modifier = "DECREMENT"
)

// PriceUpdateEntities are the extracted fields for MENU_PRICE_UPDATE.
type PriceUpdateEntities struct {
	Target       string   `json:"target"`
	Modifier     Modifier `json:"modifier"`
	Value        float64  `json:"value"`
	IsPercentage bool     `json:"is_percentage"`
}

// AvailabilityEntities are the extracted fields for MENU_AVAILABILITY_TOGGLE.
type AvailabilityEntities struct {
	Items     []string `json:"items"`
	Available bool     `json:"available"`
}

// MenuSearchEntities are the extracted fields for MENU_SEARCH.
type MenuSearchEntities struct {
	Query string `json:"query"`
}

// Entities is a tagged union keyed by intent. At most one variant is set;
// intents without entities leave all of them nil. Raw preserves the original
// loose mapping for the message log, arbitrary extra keys included.
type Entities struct {
	PriceUpdate  *PriceUpdateEntities
	Availability *AvailabilityEntities
	MenuSearch   *MenuSearchEntities
	Raw          map[string]interface{}
}

// Classification is the resolved outcome for one utterance.
type Classification struct {
	Intent                Intent
	Entities              Entities
	Confidence            float64
	NeedsClarification    bool
	ClarificationQuestion string
}

// FromMap decodes the loose entity mapping an external classifier returns
// into the variant the given intent requires. Missing keys leave zero values
// for the handler to treat as absent; unknown keys are ignored.
func FromMap(in Intent, m map[string]interface{}) Entities {
	e := Entities{Raw: m}
	if m == nil {
		return e
	}

	switch in {
	case MenuPriceUpdate:
		pu := &PriceUpdateEntities{Modifier: ModifierIncrement}
		if v, ok := m["target"].(string); ok {
			pu.Target = v
		}
		if v, ok := m["modifier"].(string); ok && Modifier(v) == ModifierDecrement {
			pu.Modifier = ModifierDecrement
		}
		pu.Value = toFloat(m["value"])
		pu.IsPercentage = toBool(m["is_percentage"])
		e.PriceUpdate = pu

	case MenuAvailabilityToggle:
		av := &AvailabilityEntities{}
		switch items := m["items"].(type) {
		case []interface{}:
			for _, it := range items {
				if s, ok := it.(string); ok && s != "" {
					av.Items = append(av.Items, s)
				}
			}
		case []string:
			av.Items = append(av.Items, items...)
		case string:
			if items != "" {
				av.Items = []string{items}
			}
		}
		av.Available = toBool(m["available"])
		e.Availability = av

	case MenuSearch:
		ms := &MenuSearchEntities{}
		if v, ok := m["query"].(string); ok {
			ms.Query = v
		}
		e.MenuSearch = ms
	}

	return e
}

// Map renders the typed variant back into the loose mapping persisted on the
// message log.
func (e Entities) Map() map[string]interface{} {
	switch {
	case e.PriceUpdate != nil:
		return map[string]interface{}{
			"target":        e.PriceUpdate.Target,
			"modifier":      string(e.PriceUpdate.Modifier),
			"value":         e.PriceUpdate.Value,
			"is_percentage": e.PriceUpdate.IsPercentage,
		}
	case e.Availability != nil:
		items := make([]interface{}, 0, len(e.Availability.Items))
		for _, it := range e.Availability.Items {
			items = append(items, it)
		}
		return map[string]interface{}{
			"items":     items,
			"available": e.Availability.Available,
		}
	case e.MenuSearch != nil:
		return map[string]interface{}{
			"query": e.MenuSearch.Query,
		}
	case e.Raw != nil:
		return e.Raw
	}
	return map[string]interface{}{}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

func toBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
