package adapter

import (
	"math"
	"reflect"
	"testing"
)

func TestOptions_KeyedChargesShape(t *testing.T) {
	raw := decodeRaw(t, `{
		"options": [
			{
				"id": 501,
				"displayDescription": "Full Door to Door",
				"description": "internal desc",
				"valueInclusive": 8800,
				"charges": {
					"c2": {"id": "c2", "type": "I", "description": "Packing", "valueInclusive": 1200, "sort": "020"},
					"c1": {"id": "c1", "type": "F", "description": "Freight", "valueInclusive": 7600, "sort": "010", "oneTotal": "Y"},
					"c3": {"id": "c3", "type": "I", "description": "", "valueInclusive": 0, "sort": "030"}
				}
			}
		]
	}`)

	options := Options(raw, 0.10)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	opt := options[0]

	if opt.Name != "Full Door to Door" {
		t.Fatalf("expected display description preferred, got %q", opt.Name)
	}
	if opt.TotalPrice != 8800 {
		t.Fatalf("expected total 8800, got %v", opt.TotalPrice)
	}
	// No explicit valueExclusive: net falls back to total / 1.1.
	if math.Abs(opt.NetPrice-8000) > 0.0001 {
		t.Fatalf("expected net 8000, got %v", opt.NetPrice)
	}
	if len(opt.Charges) != 3 {
		t.Fatalf("expected 3 charges, got %d", len(opt.Charges))
	}
	// Keyed object flattened into sort-key order.
	if opt.Charges[0].ID != "c1" || opt.Charges[1].ID != "c2" || opt.Charges[2].ID != "c3" {
		t.Fatalf("charges not in sort order: %+v", opt.Charges)
	}
	if !opt.Charges[0].IsBaseCharge {
		t.Fatal("expected oneTotal charge flagged as base charge")
	}
	// Inclusions: type I with non-empty description only.
	if !reflect.DeepEqual(opt.RawData.Inclusions, []string{"Packing"}) {
		t.Fatalf("unexpected inclusions: %v", opt.RawData.Inclusions)
	}
}

func TestOptions_ExplicitNetPreferred(t *testing.T) {
	raw := decodeRaw(t, `{
		"options": [
			{"id": 1, "valueInclusive": 1100, "valueExclusive": 1000, "charges": {}}
		]
	}`)

	options := Options(raw, 0.10)
	if options[0].NetPrice != 1000 {
		t.Fatalf("expected explicit net 1000, got %v", options[0].NetPrice)
	}
}

func TestOptions_MissingChargesIsEmptyNotError(t *testing.T) {
	raw := decodeRaw(t, `{"options": [{"id": 1}]}`)

	options := Options(raw, 0.10)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].Charges == nil || len(options[0].Charges) != 0 {
		t.Fatalf("expected empty charge slice, got %v", options[0].Charges)
	}
	if options[0].TotalPrice != 0 || options[0].NetPrice != 0 {
		t.Fatalf("expected zero prices, got %+v", options[0])
	}
}

func TestOptions_MalformedPayloadYieldsNoOptions(t *testing.T) {
	if got := Options(map[string]any{"options": "garbage"}, 0.10); len(got) != 0 {
		t.Fatalf("expected no options, got %v", got)
	}
	if got := Options(map[string]any{}, 0.10); len(got) != 0 {
		t.Fatalf("expected no options, got %v", got)
	}
}
