package seed

import (
	"strings"
	"testing"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/config"
)

func testGenerator() *Generator {
	return NewGeneratorWithSeed(config.SeedConfig{
		Clients:  5,
		Couriers: 8,
		Services: 20,
	}, 42)
}

func TestTimeline(t *testing.T) {
	g := testGenerator()
	solicitud := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		eventos := g.timeline(solicitud)

		if len(eventos) < 1 || len(eventos) > len(estados) {
			t.Fatalf("Timeline has %d events", len(eventos))
		}
		if eventos[0].EstadoID != 1 || !eventos[0].En.Equal(solicitud) {
			t.Fatalf("Timeline does not start at request: %+v", eventos[0])
		}
		for j := 1; j < len(eventos); j++ {
			if eventos[j].EstadoID != eventos[j-1].EstadoID+1 {
				t.Fatalf("States out of order: %+v", eventos)
			}
			if !eventos[j].En.After(eventos[j-1].En) {
				t.Fatalf("Timestamps not increasing: %+v", eventos)
			}
		}
	}
}

func TestNovedadesPorServicio(t *testing.T) {
	g := testGenerator()

	seen := make(map[int]int)
	for i := 0; i < 1000; i++ {
		n := g.novedadesPorServicio()
		if n < 0 || n > 2 {
			t.Fatalf("Novelty count out of range: %d", n)
		}
		seen[n]++
	}

	// Most services have no novelty; some have at least one.
	if seen[0] < 500 {
		t.Errorf("Expected mostly incident-free services, got %v", seen)
	}
	if seen[1]+seen[2] == 0 {
		t.Errorf("Expected some services with novelties, got %v", seen)
	}
}

func TestCatalogsCoverEveryUrgencyCategory(t *testing.T) {
	// The fixed service-type catalog must include urgent, normal and
	// administrative descriptions so every urgency bucket gets rows.
	var urgente, normal, administrativo bool
	for _, ts := range tiposServicio {
		switch {
		case strings.Contains(ts, "Urgente"), strings.Contains(ts, "Vital"):
			urgente = true
		case strings.Contains(ts, "Normal"):
			normal = true
		case strings.Contains(ts, "Administrativo"):
			administrativo = true
		}
	}
	if !urgente || !normal || !administrativo {
		t.Errorf("Service-type catalog misses an urgency bucket: %v", tiposServicio)
	}
}
