package adapter

import (
	"sort"

	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/internal/moveware/transport"
)

// Options maps the legacy "options" endpoint payload (Shape A) into costing
// records. In this shape each option's charges arrive as a keyed object
// rather than an array, and option totals are tax-inclusive with the net
// figure sometimes omitted entirely; taxRate is the configured implicit rate
// used for the net fallback (a documented approximation, not a guess).
func Options(raw map[string]any, taxRate float64) []transport.Costing {
	opts := fields.ToArray(unwrapData(raw), "options")
	costings := make([]transport.Costing, 0, len(opts))

	for _, entry := range opts {
		opt := fields.AsMap(entry)
		charges := keyedCharges(fields.AsMap(fields.Pick(opt, "charges")))

		costing := transport.Costing{
			ID:             fields.Str(fields.Pick(opt, "id", "optionId")),
			Name:           fields.Str(fields.Pick(opt, "displayDescription", "description", "name")),
			Category:       fields.Str(fields.Pick(opt, "category", "type")),
			Quantity:       fields.Num(fields.Pick(opt, "quantity", "qty")),
			Currency:       fields.Str(fields.Pick(opt, "currency")),
			CurrencySymbol: fields.Str(fields.Pick(opt, "currencySymbol", "symbol")),
			Charges:        charges,
		}

		costing.TotalPrice = fields.Num(fields.Pick(opt, "valueInclusive", "total"))
		costing.TaxInclusive = fields.Pick(opt, "valueInclusive") != nil
		if costing.TotalPrice <= 0 {
			costing.TotalPrice = sumIncludedCharges(charges)
		}

		if net := fields.Pick(opt, "valueExclusive"); net != nil {
			costing.NetPrice = fields.Num(net)
		} else if taxRate > 0 {
			costing.NetPrice = costing.TotalPrice / (1 + taxRate)
		} else {
			costing.NetPrice = costing.TotalPrice
		}

		costing.RawData.Inclusions = shapeAInclusions(fields.AsMap(fields.Pick(opt, "charges")))
		costing.RawData.Exclusions = fields.Bullets(fields.Str(fields.Pick(opt, "exclusions", "exclusionText")))

		costings = append(costings, costing)
	}

	return costings
}

// keyedCharges flattens a charges object keyed by charge id into an ordered
// slice. The upstream keyed shape has no stable order, so charges are sorted
// by their sort key, then id, to keep adapter output deterministic.
func keyedCharges(chargesObj map[string]any) []transport.CostingCharge {
	charges := make([]transport.CostingCharge, 0, len(chargesObj))
	for _, entry := range chargesObj {
		ch := fields.AsMap(entry)
		charges = append(charges, transport.CostingCharge{
			ID:           fields.Str(fields.Pick(ch, "id", "chargeId")),
			Heading:      fields.Str(fields.Pick(ch, "displayDescription", "description", "heading")),
			Notes:        fields.Str(fields.Pick(ch, "notes", "comments")),
			Quantity:     fields.Num(fields.Pick(ch, "quantity", "qty")),
			UnitPrice:    fields.Num(fields.Pick(ch, "valueInclusive", "value", "amount", "price")),
			Currency:     fields.Str(fields.Pick(ch, "currency")),
			Sort:         fields.Str(fields.Pick(ch, "sort")),
			Included:     fields.Truthy(fields.Pick(ch, "included")) || fields.Str(fields.Pick(ch, "type")) == "I",
			IsBaseCharge: fields.Truthy(fields.Pick(ch, "oneTotal")),
		})
	}

	sort.Slice(charges, func(i, j int) bool {
		if charges[i].Sort != charges[j].Sort {
			return charges[i].Sort < charges[j].Sort
		}
		return charges[i].ID < charges[j].ID
	})
	return charges
}

// shapeAInclusions builds the inclusion bullet list from charges of type "I"
// that carry a non-empty description.
func shapeAInclusions(chargesObj map[string]any) []string {
	inclusions := make([]string, 0, len(chargesObj))
	for _, entry := range chargesObj {
		ch := fields.AsMap(entry)
		if fields.Str(fields.Pick(ch, "type")) != "I" {
			continue
		}
		if desc := fields.Str(fields.Pick(ch, "displayDescription", "description")); desc != "" {
			inclusions = append(inclusions, desc)
		}
	}
	sort.Strings(inclusions)
	return inclusions
}

func sumIncludedCharges(charges []transport.CostingCharge) float64 {
	var total float64
	for _, ch := range charges {
		if ch.Included {
			total += ch.UnitPrice
		}
	}
	return total
}

// unwrapData unwraps a single-level "data" envelope when present.
func unwrapData(raw map[string]any) any {
	if inner, ok := raw["data"].(map[string]any); ok {
		return inner
	}
	if inner, ok := raw["data"].([]any); ok {
		return inner
	}
	return raw
}
