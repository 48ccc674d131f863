package features

import (
	"reflect"
	"testing"
)

func TestExtractStorageAndRAM(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("samsung galaxy 128gb storage 8gb ram")
	if !reflect.DeepEqual(got["storage"], []string{"128gb"}) {
		t.Errorf("storage: %v", got["storage"])
	}
	if !reflect.DeepEqual(got["ram"], []string{"8gb"}) {
		t.Errorf("ram: %v", got["ram"])
	}
	if !reflect.DeepEqual(got["brand"], []string{"samsung"}) {
		t.Errorf("brand: %v", got["brand"])
	}
}

func TestExtractMultipleStorageSizesAllRetained(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("iphone 128gb or 256gb")
	want := []string{"128gb", "256gb"}
	if !reflect.DeepEqual(got["storage"], want) {
		t.Errorf("all storage matches must be retained: %v", got["storage"])
	}
}

func TestExtractPriceCeiling(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("earphones under 2000")
	if !reflect.DeepEqual(got["price_max"], []string{"2000"}) {
		t.Errorf("price_max: %v", got["price_max"])
	}

	got = e.Extract("laptop below rs. 50000")
	if !reflect.DeepEqual(got["price_max"], []string{"50000"}) {
		t.Errorf("price_max with rs prefix: %v", got["price_max"])
	}
}

func TestExtractPriceRange(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("phone between 10000 and 20000")
	if !reflect.DeepEqual(got["price_min"], []string{"10000"}) {
		t.Errorf("price_min: %v", got["price_min"])
	}
	if !reflect.DeepEqual(got["price_max"], []string{"20000"}) {
		t.Errorf("price_max: %v", got["price_max"])
	}
}

func TestExtractBatteryScreenCamera(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("6.5 inch display 5000mah battery 48mp camera")
	if !reflect.DeepEqual(got["screen_size"], []string{"6.5inch"}) {
		t.Errorf("screen_size: %v", got["screen_size"])
	}
	if !reflect.DeepEqual(got["battery"], []string{"5000mah"}) {
		t.Errorf("battery: %v", got["battery"])
	}
	if !reflect.DeepEqual(got["camera"], []string{"48mp"}) {
		t.Errorf("camera: %v", got["camera"])
	}
}

func TestExtractBrandAndColor(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("black nike running shoes")
	if !reflect.DeepEqual(got["brand"], []string{"nike"}) {
		t.Errorf("brand: %v", got["brand"])
	}
	if !reflect.DeepEqual(got["color"], []string{"black"}) {
		t.Errorf("color: %v", got["color"])
	}
}

func TestExtractMultiWordBrand(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("allen solly shirt")
	if !reflect.DeepEqual(got["brand"], []string{"allen solly"}) {
		t.Errorf("brand: %v", got["brand"])
	}
}

func TestExtractBrandWordBoundary(t *testing.T) {
	e := NewExtractor()
	// "noise" must not match inside "noiseless", nor "red" inside "wired"
	got := e.Extract("wired noiseless earphones")
	if len(got["brand"]) != 0 {
		t.Errorf("substring must not match a brand: %v", got["brand"])
	}
	if len(got["color"]) != 0 {
		t.Errorf("substring must not match a color: %v", got["color"])
	}
}

func TestExtractProcessorAndDisplay(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("snapdragon phone amoled 120hz display")
	if !reflect.DeepEqual(got["processor"], []string{"snapdragon"}) {
		t.Errorf("processor: %v", got["processor"])
	}
	if !reflect.DeepEqual(got["display"], []string{"amoled"}) {
		t.Errorf("display: %v", got["display"])
	}
	if !reflect.DeepEqual(got["refresh_rate"], []string{"120hz"}) {
		t.Errorf("refresh_rate: %v", got["refresh_rate"])
	}

	got = e.Extract("laptop core i5 16gb ram")
	if !reflect.DeepEqual(got["processor"], []string{"i5"}) {
		t.Errorf("processor: %v", got["processor"])
	}
}

func TestExtractPackWarrantyMaterial(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("pack of 3 cotton tshirt 1 year warranty")
	if !reflect.DeepEqual(got["pack_size"], []string{"3"}) {
		t.Errorf("pack_size: %v", got["pack_size"])
	}
	if !reflect.DeepEqual(got["material"], []string{"cotton"}) {
		t.Errorf("material: %v", got["material"])
	}
	if !reflect.DeepEqual(got["warranty"], []string{"1year"}) {
		t.Errorf("warranty: %v", got["warranty"])
	}
}

func TestExtractWeightAndCapacity(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("1.5 litres kettle 2kg dumbbell 500 watts")
	if !reflect.DeepEqual(got["capacity"], []string{"1.5l"}) {
		t.Errorf("capacity: %v", got["capacity"])
	}
	if !reflect.DeepEqual(got["weight"], []string{"2kg"}) {
		t.Errorf("weight: %v", got["weight"])
	}
	if !reflect.DeepEqual(got["power"], []string{"500w"}) {
		t.Errorf("power: %v", got["power"])
	}
}

func TestExtractNothing(t *testing.T) {
	e := NewExtractor()
	got := e.Extract("some plain words")
	if len(got) != 0 {
		t.Errorf("no attributes expected, got %v", got)
	}
}
