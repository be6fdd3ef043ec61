package adapter

import (
	"moveware_portal_backend/internal/moveware/fields"
	"moveware_portal_backend/internal/moveware/transport"
)

// Inventory maps raw inventory usage records into per-item cube and weight
// figures, reconciling the unit-vs-total field variants. The returned
// truncated flag reports whether upstream metadata claims more items exist
// than were returned; pagination of this endpoint is not implemented, so
// callers surface the flag instead of silently serving a partial list.
func Inventory(raw map[string]any) ([]transport.InventoryItem, bool) {
	entries := fields.ToArray(unwrapData(raw), "inventoryUsage", "inventory", "inventoryItems")
	items := make([]transport.InventoryItem, 0, len(entries))

	for _, entry := range entries {
		item := fields.AsMap(entry)
		qty := fields.Num(fields.Pick(item, "quantity", "qty"))

		items = append(items, transport.InventoryItem{
			ID:          fields.Str(fields.Pick(item, "id", "itemId")),
			Description: fields.Str(fields.Pick(item, "description", "item", "name")),
			Room:        fields.Str(fields.Pick(item, "room", "location")),
			Quantity:    qty,
			CubeM3:      itemCube(item, qty),
			TypeCode:    fields.Str(fields.Pick(item, "type", "category")),
			WeightKg:    itemWeight(item),
		})
	}

	return items, truncationSuspected(raw, len(entries))
}

// itemCube prefers an already-totaled flat field when positive, otherwise
// multiplies the unit volume by quantity.
func itemCube(item map[string]any, qty float64) float64 {
	if total := fields.Num(fields.Pick(item, "cubetot", "totalCube", "totalM3")); total > 0 {
		return total
	}

	unit := fields.Num(fields.Dig(item, "volume", "meter"))
	if unit == 0 {
		unit = fields.Num(fields.Dig(item, "volume", "other"))
	}
	if unit == 0 {
		unit = fields.Num(fields.Pick(item, "cube"))
	}
	return unit * qty
}

// itemWeight prefers the quantity-multiplied total inside the weight block;
// the flat unit field is used as-is when no total variant is present.
func itemWeight(item map[string]any) float64 {
	if weight, ok := item["weight"].(map[string]any); ok {
		if total := fields.Pick(weight, "totalkg"); total != nil {
			return fields.Num(total)
		}
		return fields.Num(fields.Pick(weight, "kg"))
	}
	return fields.Num(fields.Pick(item, "weight", "weightKg"))
}

// truncationSuspected checks response metadata for a total row count larger
// than the number of returned items.
func truncationSuspected(raw map[string]any, returned int) bool {
	meta := fields.AsMap(fields.Pick(raw, "meta", "metadata", "pagination"))
	total := fields.Num(fields.Pick(meta, "total", "totalCount", "count"))
	return total > float64(returned)
}
