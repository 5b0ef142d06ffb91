package etl

import "testing"

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestOrderRespectsDependencies(t *testing.T) {
	steps := []Step{
		{Name: "Dim_Cliente"},
		{Name: "Dim_Geografia"},
		{Name: "Dim_Sede", DependsOn: []string{"Dim_Cliente", "Dim_Geografia"}},
		{Name: "Fact_Cambio_Estado_Servicio", DependsOn: []string{"Dim_Cliente", "Dim_Geografia", "Dim_Sede"}},
	}

	order, err := Order(steps)
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	if len(order) != len(steps) {
		t.Fatalf("Order returned %d steps, want %d", len(order), len(steps))
	}

	if indexOf(order, "Dim_Sede") < indexOf(order, "Dim_Cliente") {
		t.Error("Dim_Sede scheduled before Dim_Cliente")
	}
	if indexOf(order, "Dim_Sede") < indexOf(order, "Dim_Geografia") {
		t.Error("Dim_Sede scheduled before Dim_Geografia")
	}
	if indexOf(order, "Fact_Cambio_Estado_Servicio") != len(order)-1 {
		t.Error("Fact not scheduled last")
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	steps := []Step{
		{Name: "b"},
		{Name: "a"},
		{Name: "c", DependsOn: []string{"a"}},
	}

	first, err := Order(steps)
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := Order(steps)
		if err != nil {
			t.Fatalf("Order failed: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("Order not deterministic: %v vs %v", first, again)
			}
		}
	}

	// Independent steps keep declaration order.
	if first[0] != "b" || first[1] != "a" {
		t.Errorf("Declaration order not preserved: %v", first)
	}
}

func TestOrderUnknownDependency(t *testing.T) {
	_, err := Order([]Step{{Name: "a", DependsOn: []string{"ghost"}}})
	if err == nil {
		t.Error("Expected error for unknown dependency, got nil")
	}
}

func TestOrderCycle(t *testing.T) {
	_, err := Order([]Step{
		{Name: "a", DependsOn: []string{"b"}},
		{Name: "b", DependsOn: []string{"a"}},
	})
	if err == nil {
		t.Error("Expected error for cycle, got nil")
	}
}

func TestOrderDuplicate(t *testing.T) {
	_, err := Order([]Step{{Name: "a"}, {Name: "a"}})
	if err == nil {
		t.Error("Expected error for duplicate step, got nil")
	}
}
