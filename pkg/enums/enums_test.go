package enums

import "testing"

func TestNormalizeProductSort(t *testing.T) {
	cases := map[string]ProductSort{
		"price_asc":  ProductSortPriceAsc,
		"price_desc": ProductSortPriceDesc,
		"newest":     ProductSortNewest,
		"":           ProductSortNewest,
		"PRICE_ASC":  ProductSortNewest,
		"rating":     ProductSortNewest,
	}
	for input, want := range cases {
		if got := NormalizeProductSort(input); got != want {
			t.Fatalf("NormalizeProductSort(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseSubscriptionStatus(t *testing.T) {
	status, err := ParseSubscriptionStatus("ACTIVE")
	if err != nil || status != SubscriptionStatusActive {
		t.Fatalf("expected ACTIVE, got %q (%v)", status, err)
	}
	if _, err := ParseSubscriptionStatus("active"); err == nil {
		t.Fatal("expected lowercase status to be rejected")
	}
}

func TestParseProductStatusAndCategoryLevel(t *testing.T) {
	if _, err := ParseProductStatus("ACTIVE"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseProductStatus("ARCHIVED"); err == nil {
		t.Fatal("expected unknown product status to fail")
	}
	if !CategoryLevelMicro.IsValid() {
		t.Fatal("expected micro to be valid")
	}
	if _, err := ParseCategoryLevel("leaf"); err == nil {
		t.Fatal("expected unknown level to fail")
	}
}
