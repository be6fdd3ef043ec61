package adapter

import (
	"reflect"
	"testing"
)

func TestQuotationOptions_OneTotalChargePrice(t *testing.T) {
	raw := decodeRaw(t, `{
		"options": [
			{
				"id": 9001,
				"description": "Sea Freight",
				"valueInclusive": 1050,
				"charges": [
					{"id": "b", "sort": "020", "description": "Insurance", "rateExclusive": 150, "included": "Y"},
					{"id": "a", "sort": "010", "description": "Removal", "rateExclusive": 0, "rateInclusive": 1050, "included": true, "oneTotal": true}
				]
			}
		]
	}`)

	options := QuotationOptions(raw)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	opt := options[0]

	// Charges sorted lexically by sort key before mapping.
	if opt.Charges[0].ID != "a" || opt.Charges[1].ID != "b" {
		t.Fatalf("charges not sorted: %+v", opt.Charges)
	}
	// rateExclusive 0 means the real figure is in rateInclusive.
	if opt.Charges[0].UnitPrice != 1050 {
		t.Fatalf("expected base charge price 1050, got %v", opt.Charges[0].UnitPrice)
	}
	if opt.Charges[1].UnitPrice != 150 {
		t.Fatalf("expected non-zero rateExclusive kept, got %v", opt.Charges[1].UnitPrice)
	}
	if !opt.Charges[0].IsBaseCharge || opt.Charges[1].IsBaseCharge {
		t.Fatalf("oneTotal flag mismapped: %+v", opt.Charges)
	}
	// "Y" normalizes to included for the charge record.
	if !opt.Charges[1].Included {
		t.Fatal("expected Y-flagged charge to be included")
	}
	if opt.TotalPrice != 1050 {
		t.Fatalf("expected option total 1050, got %v", opt.TotalPrice)
	}
}

func TestQuotationOptions_ZeroTotalSumsStrictlyIncludedCharges(t *testing.T) {
	raw := decodeRaw(t, `{
		"options": [
			{
				"id": 1,
				"valueInclusive": 0,
				"charges": [
					{"id": "a", "sort": "010", "included": true, "rateInclusive": 500},
					{"id": "b", "sort": "020", "included": false, "rateInclusive": 200},
					{"id": "c", "sort": "030", "included": "Y", "rateInclusive": 300}
				]
			}
		]
	}`)

	options := QuotationOptions(raw)
	// The sum only counts strict boolean true: the "Y" charge is excluded
	// from the total even though its own record normalizes to included.
	if options[0].TotalPrice != 500 {
		t.Fatalf("expected total 500, got %v", options[0].TotalPrice)
	}
	if !options[0].Charges[2].Included {
		t.Fatal("expected Y charge record itself to normalize to included")
	}
}

func TestQuotationOptions_BulletTextParsing(t *testing.T) {
	raw := decodeRaw(t, `{
		"options": [
			{
				"id": 1,
				"inclusions": "• Packing\n- Loading\n",
				"exclusions": "* Storage\n\n"
			}
		]
	}`)

	opt := QuotationOptions(raw)[0]
	if !reflect.DeepEqual(opt.RawData.Inclusions, []string{"Packing", "Loading"}) {
		t.Fatalf("unexpected inclusions: %v", opt.RawData.Inclusions)
	}
	if !reflect.DeepEqual(opt.RawData.Exclusions, []string{"Storage"}) {
		t.Fatalf("unexpected exclusions: %v", opt.RawData.Exclusions)
	}
}

func TestQuotationOptions_DataEnvelopeAndMissingCharges(t *testing.T) {
	raw := decodeRaw(t, `{"data": {"options": [{"id": 3, "description": "Road"}]}}`)

	options := QuotationOptions(raw)
	if len(options) != 1 || options[0].ID != "3" {
		t.Fatalf("expected envelope unwrap, got %+v", options)
	}
	if len(options[0].Charges) != 0 {
		t.Fatalf("expected empty charges, got %v", options[0].Charges)
	}
}
