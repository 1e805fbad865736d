package nlu

import "testing"

func TestNormalizeOrderID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ORD-1001", "ORD-1001"},
		{"ord-1001", "ORD-1001"},
		{"ORD_1001", "ORD-1001"},
		{"ord_42", "ORD-42"},
		{"ORD1001", "ORD-1001"},
		{"ord9", "ORD-9"},
	}
	for _, tt := range tests {
		if got := NormalizeOrderID(tt.in); got != tt.want {
			t.Errorf("NormalizeOrderID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cancel ORD-1001 please", "ORD-1001"},
		{"track ord_2345", "ORD-2345"},
		{"status for ORD3001?", "ORD-3001"},
		{"no id here", ""},
		{"ORDER of magnitude", ""},
	}
	for _, tt := range tests {
		if got := ExtractOrderID(tt.in); got != tt.want {
			t.Errorf("ExtractOrderID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveLocally(t *testing.T) {
	t.Run("order id wins over brand", func(t *testing.T) {
		res := ResolveLocally("return my dell, order ORD-77")
		if res == nil || res.Intent != "order_status" {
			t.Fatalf("got %+v, want order_status", res)
		}
		if res.Entities["order_id"] != "ORD-77" {
			t.Errorf("order_id = %q", res.Entities["order_id"])
		}
	})

	t.Run("brand mention", func(t *testing.T) {
		res := ResolveLocally("show me Lenovo laptops")
		if res == nil || res.Intent != "product_inquiry" {
			t.Fatalf("got %+v, want product_inquiry", res)
		}
		if res.Entities["brand"] != "lenovo" {
			t.Errorf("brand = %q", res.Entities["brand"])
		}
	})

	t.Run("nothing local", func(t *testing.T) {
		if res := ResolveLocally("hello there"); res != nil {
			t.Errorf("expected nil, got %+v", res)
		}
	})
}

func TestParseResolution(t *testing.T) {
	res, err := parseResolution(`{"intent": "product_inquiry", "entities": {"brand": "hp", "max_price": 50000}}`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != "product_inquiry" {
		t.Errorf("intent = %q", res.Intent)
	}
	if res.Entities["max_price"] != "50000" {
		t.Errorf("max_price = %q, want stringified number", res.Entities["max_price"])
	}

	res, err = parseResolution(`{"entities": {"order_id": "ord_1002"}}`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != "general_question" {
		t.Errorf("missing intent should default, got %q", res.Intent)
	}
	if res.Entities["order_id"] != "ORD-1002" {
		t.Errorf("order_id not normalized: %q", res.Entities["order_id"])
	}

	if _, err := parseResolution("not json"); err == nil {
		t.Error("expected error for malformed output")
	}
}
