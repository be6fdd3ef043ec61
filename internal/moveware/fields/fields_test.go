package fields

import (
	"reflect"
	"testing"
)

func TestStr_Coercions(t *testing.T) {
	if got := Str(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
	if got := Str("abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := Str(float64(42)); got != "42" {
		t.Fatalf("expected 42, got %q", got)
	}
	if got := Str(42.5); got != "42.5" {
		t.Fatalf("expected 42.5, got %q", got)
	}
}

func TestNum_Coercions(t *testing.T) {
	if got := Num(nil); got != 0 {
		t.Fatalf("expected 0 for nil, got %v", got)
	}
	if got := Num("12.5"); got != 12.5 {
		t.Fatalf("expected 12.5, got %v", got)
	}
	if got := Num("not a number"); got != 0 {
		t.Fatalf("expected 0 for non-numeric string, got %v", got)
	}
	if got := Num(" 7 "); got != 7 {
		t.Fatalf("expected 7 for padded string, got %v", got)
	}
	if got := Num(true); got != 1 {
		t.Fatalf("expected 1 for true, got %v", got)
	}
}

func TestNum_NonFiniteStringsBecomeZero(t *testing.T) {
	for _, v := range []string{"NaN", "nan", "Inf", "-Inf", "+inf", "Infinity", " -infinity "} {
		if got := Num(v); got != 0 {
			t.Fatalf("expected 0 for %q, got %v", v, got)
		}
	}
}

func TestPick_FirstPresentNonNilWins(t *testing.T) {
	obj := map[string]any{"a": nil, "b": float64(5), "c": "later"}

	if got := Pick(obj, "a", "b", "c"); got != float64(5) {
		t.Fatalf("expected 5, got %v", got)
	}
	if got := Pick(obj, "missing", "c"); got != "later" {
		t.Fatalf("expected later, got %v", got)
	}
	if got := Pick(obj, "missing", "a"); got != nil {
		t.Fatalf("expected nil for all-absent keys, got %v", got)
	}
	if got := Pick(nil, "a"); got != nil {
		t.Fatalf("expected nil for nil object, got %v", got)
	}
}

func TestToArray_UnwrapsCommonShapes(t *testing.T) {
	direct := []any{"x"}
	if got := ToArray(direct); !reflect.DeepEqual(got, direct) {
		t.Fatalf("expected passthrough for direct array, got %v", got)
	}

	wrapped := map[string]any{"data": []any{"y"}}
	if got := ToArray(wrapped); !reflect.DeepEqual(got, []any{"y"}) {
		t.Fatalf("expected data unwrap, got %v", got)
	}

	custom := map[string]any{"inventoryUsage": []any{"z"}}
	if got := ToArray(custom, "inventoryUsage"); !reflect.DeepEqual(got, []any{"z"}) {
		t.Fatalf("expected custom key unwrap, got %v", got)
	}

	if got := ToArray("garbage"); len(got) != 0 {
		t.Fatalf("expected empty slice for malformed input, got %v", got)
	}
	if got := ToArray(map[string]any{"data": "not an array"}); len(got) != 0 {
		t.Fatalf("expected empty slice for non-array wrapper value, got %v", got)
	}
}

func TestTruthy_FiveEncodings(t *testing.T) {
	for _, v := range []any{true, "true", "Y", "y", float64(1)} {
		if !Truthy(v) {
			t.Fatalf("expected %v to be truthy", v)
		}
	}
	for _, v := range []any{false, "false", "N", float64(0), nil, "1 "} {
		if Truthy(v) {
			t.Fatalf("expected %v to be falsy", v)
		}
	}
}

func TestBullets_StripsPrefixesAndEmptyLines(t *testing.T) {
	got := Bullets("• Packing\n- Loading\n")
	want := []string{"Packing", "Loading"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = Bullets("* Insurance \n\n  Storage  ")
	want = []string{"Insurance", "Storage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if got := Bullets(""); len(got) != 0 {
		t.Fatalf("expected no lines for empty text, got %v", got)
	}
}

func TestDig_NestedLookup(t *testing.T) {
	obj := map[string]any{
		"volume": map[string]any{"gross": map[string]any{"m3": 31.5}},
	}
	if got := Dig(obj, "volume", "gross", "m3"); got != 31.5 {
		t.Fatalf("expected 31.5, got %v", got)
	}
	if got := Dig(obj, "volume", "net", "m3"); got != nil {
		t.Fatalf("expected nil for missing path, got %v", got)
	}
}
