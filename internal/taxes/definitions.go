// Package taxes implements the tax calculation engine behind the taxes.calculate webhook event.
package taxes

// Definition is one externally configured tax. A definition belongs either to
// the product category or to the shipping category, never both.
type Definition struct {
	Name              string  `yaml:"name" json:"name"`
	Rate              float64 `yaml:"rate" json:"rate"`
	NumberForInvoice  string  `yaml:"numberForInvoice" json:"numberForInvoice"`
	AppliesToShipping bool    `yaml:"appliesToShipping" json:"appliesToShipping"`
}

// Definitions is an ordered list of configured taxes.
type Definitions []Definition

// Products returns the definitions applicable to product line items, preserving order.
func (ds Definitions) Products() Definitions {
	var out Definitions
	for _, d := range ds {
		if !d.AppliesToShipping {
			out = append(out, d)
		}
	}
	return out
}

// Shipping returns the definitions applicable to shipping fees, preserving order.
func (ds Definitions) Shipping() Definitions {
	var out Definitions
	for _, d := range ds {
		if d.AppliesToShipping {
			out = append(out, d)
		}
	}
	return out
}

// ByName returns the first definition with the given display name.
func (ds Definitions) ByName(name string) (Definition, bool) {
	for _, d := range ds {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
