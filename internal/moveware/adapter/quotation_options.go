package adapter

import (
	"sort"

	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/internal/moveware/transport"
)

// QuotationOptions maps the quotation-options endpoint payload (Shape B)
// into costing records. In this shape charges arrive as an array carrying a
// lexical sort key, inclusion flags use several truthy encodings, and the
// aggregate "one total" charge often reports rateExclusive as 0 while the
// real figure sits in rateInclusive.
func QuotationOptions(raw map[string]any) []transport.Costing {
	root := fields.AsMap(unwrapData(raw))
	opts := fields.ToArray(fields.Pick(root, "options", "quotationOptions"))
	costings := make([]transport.Costing, 0, len(opts))

	for _, entry := range opts {
		opt := fields.AsMap(entry)
		rawCharges := sortedCharges(fields.ToArray(fields.Pick(opt, "charges")))

		charges := make([]transport.CostingCharge, 0, len(rawCharges))
		for _, chRaw := range rawCharges {
			charges = append(charges, arrayCharge(chRaw))
		}

		costing := transport.Costing{
			ID:             fields.Str(fields.Pick(opt, "id", "optionId")),
			Name:           fields.Str(fields.Pick(opt, "displayDescription", "description", "name")),
			Category:       fields.Str(fields.Pick(opt, "category", "type")),
			Quantity:       fields.Num(fields.Pick(opt, "quantity", "qty")),
			Currency:       fields.Str(fields.Pick(opt, "currency")),
			CurrencySymbol: fields.Str(fields.Pick(opt, "currencySymbol", "symbol")),
			TaxInclusive:   true,
			Charges:        charges,
		}

		costing.TotalPrice = fields.Num(fields.Pick(opt, "valueInclusive"))
		if costing.TotalPrice == 0 {
			costing.TotalPrice = strictIncludedTotal(rawCharges)
		}
		if net := fields.Pick(opt, "valueExclusive"); net != nil {
			costing.NetPrice = fields.Num(net)
		} else {
			costing.NetPrice = costing.TotalPrice
		}

		costing.RawData.Inclusions = fields.Bullets(fields.Str(fields.Pick(opt, "inclusions", "inclusionText")))
		costing.RawData.Exclusions = fields.Bullets(fields.Str(fields.Pick(opt, "exclusions", "exclusionText")))

		costings = append(costings, costing)
	}

	return costings
}

// sortedCharges orders the raw charge array lexically by its sort key before
// any mapping happens.
func sortedCharges(entries []any) []map[string]any {
	charges := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		charges = append(charges, fields.AsMap(entry))
	}
	sort.SliceStable(charges, func(i, j int) bool {
		return fields.Str(fields.Pick(charges[i], "sort")) < fields.Str(fields.Pick(charges[j], "sort"))
	})
	return charges
}

// arrayCharge maps one Shape-B charge. The price prefers rateExclusive
// unless it is 0, because the aggregate one-total charge reports
// rateExclusive: 0 with the real total in rateInclusive.
func arrayCharge(ch map[string]any) transport.CostingCharge {
	price := fields.Num(fields.Pick(ch, "rateExclusive"))
	if price == 0 {
		price = fields.Num(fields.Pick(ch, "rateInclusive", "rate", "price"))
	}

	return transport.CostingCharge{
		ID:           fields.Str(fields.Pick(ch, "id", "chargeId")),
		Heading:      fields.Str(fields.Pick(ch, "displayDescription", "description", "heading")),
		Notes:        fields.Str(fields.Pick(ch, "notes", "comments")),
		Quantity:     fields.Num(fields.Pick(ch, "quantity", "qty")),
		UnitPrice:    price,
		Currency:     fields.Str(fields.Pick(ch, "currency")),
		Sort:         fields.Str(fields.Pick(ch, "sort")),
		Included:     fields.Truthy(fields.Pick(ch, "included")),
		IsBaseCharge: fields.Truthy(fields.Pick(ch, "oneTotal")),
	}
}

// strictIncludedTotal sums rateInclusive across charges whose included flag
// is the strict boolean true. Unlike the per-charge flag normalization, this
// endpoint's total computation does not accept the string/number encodings.
func strictIncludedTotal(charges []map[string]any) float64 {
	var total float64
	for _, ch := range charges {
		if included, ok := ch["included"].(bool); !ok || !included {
			continue
		}
		total += fields.Num(fields.Pick(ch, "rateInclusive"))
	}
	return total
}
