package material

import (
	"errors"
	"testing"

	"github.com/ChicagoDave/aerostat/pkg/errs"
	"github.com/ChicagoDave/aerostat/pkg/gas"
)

func TestCatalog(t *testing.T) {
	all := All()
	if len(all) != 5 {
		t.Fatalf("catalog size = %d, want 5", len(all))
	}
	for i, m := range all {
		if m.Name != Names()[i] {
			t.Errorf("All()[%d] = %q, want %q", i, m.Name, Names()[i])
		}
		if m.Density <= 0 || m.StressLimit <= 0 {
			t.Errorf("%s has non-positive reference data: %+v", m.Name, m)
		}
	}
}

func TestLookup(t *testing.T) {
	m, err := Lookup("tpu")
	if err != nil {
		t.Fatal(err)
	}
	if m.Density != 1200 || m.StressLimit != 35e6 {
		t.Errorf("TPU = %+v", m)
	}
	if _, err := Lookup("Kevlar"); !errors.Is(err, errs.ErrInvalidReference) {
		t.Errorf("Lookup(Kevlar) err = %v, want ErrInvalidReference", err)
	}
}

func TestNamesIsCopy(t *testing.T) {
	n := Names()
	n[0] = "changed"
	if Names()[0] != "HDPE" {
		t.Error("Names() exposes the internal slice")
	}
}

func TestPermeability(t *testing.T) {
	for _, name := range Names() {
		he := Permeability(name, gas.Helium)
		h2 := Permeability(name, gas.Hydrogen)
		if he <= 0 || h2 <= he {
			t.Errorf("%s: helium %v, hydrogen %v", name, he, h2)
		}
		if hot := Permeability(name, gas.HotAir); hot != 0 {
			t.Errorf("%s hot air permeability = %v, want 0", name, hot)
		}
	}
	if Permeability("Kevlar", gas.Helium) != 0 {
		t.Error("unknown material should have zero permeability")
	}
}
