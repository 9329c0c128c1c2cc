package taxes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/bitego/snipcart-webhook-app/internal/helpers"
)

// ShippingTaxMode selects how shipping fees are taxed.
type ShippingTaxMode string

const (
	// ShippingTaxNone disables shipping tax line items entirely.
	ShippingTaxNone ShippingTaxMode = "none"
	// ShippingTaxFixed taxes shipping at the single configured shipping-category definition.
	ShippingTaxFixed ShippingTaxMode = "fixed"
	// ShippingTaxHighest taxes shipping at the highest product tax rate present in the cart.
	ShippingTaxHighest ShippingTaxMode = "highest"
	// ShippingTaxSplit distributes shipping fees across the cart's item tax
	// groups proportionally to their untaxed price share.
	ShippingTaxSplit ShippingTaxMode = "split"
)

// PreconditionError marks tax calculation content that fails schema preconditions.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("tax calculation precondition failed: %s", e.Reason)
}

// LineItem is one row of the tax calculation response.
type LineItem struct {
	Name             string  `json:"name"`
	Amount           float64 `json:"amount"`
	Rate             float64 `json:"rate"`
	NumberForInvoice string  `json:"numberForInvoice"`
	IncludedInPrice  bool    `json:"includedInPrice"`
}

// Item is one cart line of the inbound taxes.calculate content. Only the
// first tax name per item is honoured; a single tax rate per product line
// is supported.
type Item struct {
	Taxable                bool     `json:"taxable"`
	Taxes                  []string `json:"taxes"`
	TotalPriceWithoutTaxes float64  `json:"totalPriceWithoutTaxes"`
}

// ShippingInformation carries the shipping fee and method of the cart.
type ShippingInformation struct {
	Fees   float64 `json:"fees"`
	Method string  `json:"method"`
}

type calculationContent struct {
	Items               json.RawMessage      `json:"items"`
	ShippingInformation *ShippingInformation `json:"shippingInformation"`
	ItemsTotal          float64              `json:"itemsTotal"`
	Currency            string               `json:"currency"`
}

// itemGroup accumulates the untaxed prices of all taxable items sharing a tax name.
type itemGroup struct {
	name       string
	sum        float64
	splitRatio float64
}

// Option is a function that applies an option to an Engine.
type Option func(*Engine)

// WithLogger sets the logger instance for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithShippingTaxMode sets the shipping tax distribution strategy.
func WithShippingTaxMode(mode ShippingTaxMode) Option {
	return func(e *Engine) {
		e.shippingMode = mode
	}
}

// WithTaxesIncludedInPrice marks all configured taxes as already contained in item prices.
func WithTaxesIncludedInPrice(included bool) Option {
	return func(e *Engine) {
		e.includedInPrice = included
	}
}

// Engine computes the tax line items for a cart. It is a pure computation
// over a read-only configuration snapshot and is safe for concurrent use.
type Engine struct {
	logger          *slog.Logger
	definitions     Definitions
	shippingMode    ShippingTaxMode
	includedInPrice bool
}

// NewEngine creates a tax engine over the given ordered tax definitions.
func NewEngine(definitions Definitions, opts ...Option) *Engine {
	_inst := &Engine{
		definitions:  definitions,
		shippingMode: ShippingTaxFixed,
		logger:       helpers.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(_inst)
	}
	return _inst
}

// Calculate produces the tax line items for the given taxes.calculate content.
// A zero items total short-circuits to an empty list: Snipcart fires the event
// once more after the cart has been emptied.
func (e *Engine) Calculate(content []byte) ([]LineItem, error) {
	var in calculationContent
	if err := json.Unmarshal(content, &in); err != nil {
		return nil, &PreconditionError{Reason: "content is not a JSON object"}
	}

	if in.ItemsTotal == 0 {
		e.logger.Debug("items total is zero, emitting empty tax list")
		return []LineItem{}, nil
	}

	var items []Item
	if in.Items == nil || json.Unmarshal(in.Items, &items) != nil {
		return nil, &PreconditionError{Reason: "items is not a list"}
	}
	if in.ShippingInformation == nil {
		return nil, &PreconditionError{Reason: "missing shippingInformation"}
	}
	if in.Currency == "" {
		return nil, &PreconditionError{Reason: "missing currency"}
	}

	digits := Precision(in.Currency)
	groups := groupItems(items, in.ItemsTotal)

	lines := make([]LineItem, 0, len(groups)+1)
	products := e.definitions.Products()

	var highest *Definition
	for i := range groups {
		g := &groups[i]
		def, ok := products.ByName(g.name)
		if !ok {
			e.logger.Warn("no tax definition configured for item tax", slog.String("tax", g.name))
			continue
		}
		lines = append(lines, e.lineItem(def, g.sum, digits, ""))
		if highest == nil || def.Rate > highest.Rate {
			d := def
			highest = &d
		}
	}

	if in.ShippingInformation.Fees > 0 && e.shippingMode != ShippingTaxNone {
		lines = append(lines, e.shippingLines(groups, *in.ShippingInformation, highest, digits)...)
	}

	return lines, nil
}

// shippingLines emits the shipping tax line items per the configured distribution strategy.
func (e *Engine) shippingLines(groups []itemGroup, shipping ShippingInformation, highest *Definition, digits int) []LineItem {
	switch e.shippingMode {
	case ShippingTaxFixed:
		shippingDefs := e.definitions.Shipping()
		if len(shippingDefs) == 0 {
			e.logger.Warn("shipping tax mode is fixed but no shipping tax is configured")
			return nil
		}
		return []LineItem{e.lineItem(shippingDefs[0], shipping.Fees, digits, shipping.Method)}

	case ShippingTaxHighest:
		if highest == nil {
			e.logger.Warn("shipping tax mode is highest but no item tax matched a definition")
			return nil
		}
		return []LineItem{e.lineItem(*highest, shipping.Fees, digits, shipping.Method)}

	case ShippingTaxSplit:
		products := e.definitions.Products()
		var lines []LineItem
		for _, g := range groups {
			def, ok := products.ByName(g.name)
			if !ok {
				continue
			}
			fraction := round(shipping.Fees*g.splitRatio, 2)
			lines = append(lines, e.lineItem(def, fraction, digits, shipping.Method))
		}
		return lines
	}
	return nil
}

func (e *Engine) lineItem(def Definition, value float64, digits int, shippingMethod string) LineItem {
	name := "+ "
	if e.includedInPrice {
		name = "incl. "
	}
	name += def.Name
	if shippingMethod != "" {
		name += " (" + shippingMethod + ")"
	}
	return LineItem{
		Name:             name,
		Amount:           CalculateTax(value, def.Rate, e.includedInPrice, digits),
		Rate:             def.Rate,
		NumberForInvoice: def.NumberForInvoice,
		IncludedInPrice:  e.includedInPrice,
	}
}

// groupItems partitions the taxable items by their first tax name, in
// first-seen order, and assigns each group its untaxed-price share of the
// cart total rounded to 2 decimal places.
func groupItems(items []Item, itemsTotal float64) []itemGroup {
	var groups []itemGroup
	index := make(map[string]int)
	for _, item := range items {
		if !item.Taxable || len(item.Taxes) == 0 {
			continue
		}
		name := item.Taxes[0]
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, itemGroup{name: name})
		}
		groups[i].sum += item.TotalPriceWithoutTaxes
	}
	for i := range groups {
		groups[i].splitRatio = round(groups[i].sum/itemsTotal, 2)
	}
	return groups
}

// CalculateTax computes the tax amount for a value at the given rate. If the
// tax is included in the price the untaxed base is derived first, otherwise
// the rate applies directly. The result is rounded to the currency precision.
func CalculateTax(value, rate float64, includedInPrice bool, digits int) float64 {
	var tax float64
	if includedInPrice {
		tax = value - value/(1+rate)
	} else {
		tax = value * rate
	}
	return round(tax, digits)
}

func round(value float64, digits int) float64 {
	factor := math.Pow10(digits)
	return math.Round(value*factor) / factor
}
