package feed

import (
	"testing"
)

func TestNormalizeAvailability_TruthTokens(t *testing.T) {
	truthy := []interface{}{
		"true", "TRUE", "1", "5", "yes", "available", "in stock",
		"в наявності", "є в наявності", "в наличии", "есть", true,
	}

	for _, value := range truthy {
		if !NormalizeAvailability(value) {
			t.Errorf("Expected %v to normalize to true", value)
		}
	}
}

func TestNormalizeAvailability_FalseTokens(t *testing.T) {
	falsy := []interface{}{
		"", "0", "false", "no", "unavailable", "out of stock", nil, false, "  ",
	}

	for _, value := range falsy {
		if NormalizeAvailability(value) {
			t.Errorf("Expected %v to normalize to false", value)
		}
	}
}

func TestNormalizePrice_CurrencyAndCommaSeparator(t *testing.T) {
	price, ok := NormalizePrice("1 234,56 ₴")

	if !ok {
		t.Fatal("Expected price to parse")
	}
	if price.String() != "1234.56" {
		t.Errorf("Expected 1234.56, got %s", price.String())
	}
}

func TestNormalizePrice_PlainNumber(t *testing.T) {
	price, ok := NormalizePrice("499")

	if !ok {
		t.Fatal("Expected price to parse")
	}
	if price.String() != "499" {
		t.Errorf("Expected 499, got %s", price.String())
	}
}

func TestNormalizePrice_RoundsToTwoDigits(t *testing.T) {
	price, ok := NormalizePrice("10.999")

	if !ok {
		t.Fatal("Expected price to parse")
	}
	if price.String() != "11" {
		t.Errorf("Expected 11, got %s", price.String())
	}
}

func TestNormalizePrice_Unparseable(t *testing.T) {
	for _, value := range []interface{}{"abc", "", nil, "₴"} {
		if _, ok := NormalizePrice(value); ok {
			t.Errorf("Expected %v to be unparseable", value)
		}
	}
}

func TestNormalizePhotos_FirstSeenDedup(t *testing.T) {
	primary, gallery := NormalizePhotos([]interface{}{"a", "b", "a", "c"})

	if primary != "a" {
		t.Errorf("Expected primary 'a', got %q", primary)
	}
	if len(gallery) != 2 || gallery[0] != "b" || gallery[1] != "c" {
		t.Errorf("Expected gallery [b c], got %v", gallery)
	}
}

func TestNormalizePhotos_DropsBlanks(t *testing.T) {
	primary, gallery := NormalizePhotos([]interface{}{"  ", "", "http://img/1", "http://img/1"})

	if primary != "http://img/1" {
		t.Errorf("Expected primary 'http://img/1', got %q", primary)
	}
	if len(gallery) != 0 {
		t.Errorf("Expected empty gallery, got %v", gallery)
	}
}

func TestNormalizePhotos_Empty(t *testing.T) {
	primary, gallery := NormalizePhotos(nil)

	if primary != "" || gallery != nil {
		t.Errorf("Expected no photos, got primary %q gallery %v", primary, gallery)
	}
}
