package dims

import (
	"errors"
	"testing"
	"time"

	"github.com/fastandsafe/courier-dwh/internal/etl"
)

func TestRegistry(t *testing.T) {
	known := []string{
		"Dim_Fecha",
		"Dim_Hora",
		"Dim_Cliente",
		"Dim_Geografia",
		"Dim_Sede",
		"Dim_Mensajero",
		"Dim_Urgencia_Servicio",
		"Dim_Estado_Servicio",
		"Dim_Novedad",
	}

	for _, name := range known {
		t.Run(name, func(t *testing.T) {
			b, err := Get(name)
			if err != nil {
				t.Fatalf("Failed to get build '%s': %v", name, err)
			}
			if b.Name() != name {
				t.Errorf("Build name mismatch: expected '%s', got '%s'", name, b.Name())
			}
		})
	}

	if _, err := Get("Dim_Nope"); err == nil {
		t.Error("Expected error for unknown build, got nil")
	}
}

func TestStepsScheduleSedeAfterItsDependencies(t *testing.T) {
	order, err := etl.Order(Steps())
	if err != nil {
		t.Fatalf("Order failed: %v", err)
	}

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}

	if pos["Dim_Sede"] < pos["Dim_Cliente"] || pos["Dim_Sede"] < pos["Dim_Geografia"] {
		t.Errorf("Dim_Sede scheduled too early: %v", order)
	}
}

func TestCalendarRows(t *testing.T) {
	start := etl.Date{Year: 2024, Month: time.January, Day: 1}
	end := etl.Date{Year: 2024, Month: time.December, Day: 31}

	rows := calendarRows(start, end)

	if len(rows) != 366 { // 2024 is a leap year
		t.Fatalf("Expected 366 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Key != int64(i+1) {
			t.Fatalf("Row %d has key %d", i, r.Key)
		}
	}

	first := rows[0]
	if first.Dia.String() != "2024-01-01" {
		t.Errorf("First day = %s", first.Dia)
	}
	if first.NombreMes != "Enero" {
		t.Errorf("First month name = %s", first.NombreMes)
	}
	if first.NombreDiaSemana != "Lunes" { // 2024-01-01 was a Monday
		t.Errorf("First weekday name = %s", first.NombreDiaSemana)
	}
	if first.NumeroDiaSemana != 1 || first.EsFinSemana {
		t.Errorf("First weekday flags wrong: %+v", first)
	}
	if first.Trimestre != 1 {
		t.Errorf("First quarter = %d", first.Trimestre)
	}

	last := rows[len(rows)-1]
	if last.Dia.String() != "2024-12-31" {
		t.Errorf("Last day = %s", last.Dia)
	}
	if last.Trimestre != 4 {
		t.Errorf("Last quarter = %d", last.Trimestre)
	}

	// 2024-01-06 was a Saturday.
	sabado := rows[5]
	if sabado.NombreDiaSemana != "Sábado" || !sabado.EsFinSemana || sabado.NumeroDiaSemana != 6 {
		t.Errorf("Saturday flags wrong: %+v", sabado)
	}
}

func TestClockRows(t *testing.T) {
	rows := clockRows()

	if len(rows) != 1440 {
		t.Fatalf("Expected 1440 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.Key != int64(i+1) {
			t.Fatalf("Row %d has key %d", i, r.Key)
		}
	}

	if rows[0].Hora.String() != "00:00" || rows[0].Franja != "Madrugada" {
		t.Errorf("First row wrong: %+v", rows[0])
	}
	if rows[len(rows)-1].Hora.String() != "23:59" || rows[len(rows)-1].Franja != "Noche" {
		t.Errorf("Last row wrong: %+v", rows[len(rows)-1])
	}
}

func TestFranjaHoraria(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Madrugada"},
		{5, "Madrugada"},
		{6, "Mañana"},
		{11, "Mañana"},
		{12, "Tarde"},
		{17, "Tarde"},
		{18, "Noche"},
		{23, "Noche"},
	}
	for _, tt := range tests {
		if got := franjaHoraria(tt.hour); got != tt.want {
			t.Errorf("franjaHoraria(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestBuildUrgencia(t *testing.T) {
	urgente := "Servicio Urgente"
	normal := "Entrega Normal"

	rows, err := buildUrgencia([]urgenciaSrc{
		{ID: 1, Descripcion: &urgente},
		{ID: 2, Descripcion: &normal},
	})
	if err != nil {
		t.Fatalf("buildUrgencia failed: %v", err)
	}

	if rows[0].Categoria != "Alta" || rows[1].Categoria != "Media" {
		t.Errorf("Categories wrong: %+v", rows)
	}
	if rows[0].Key != 1 || rows[1].Key != 2 {
		t.Errorf("Keys wrong: %+v", rows)
	}
}

func TestBuildUrgenciaNullDescription(t *testing.T) {
	_, err := buildUrgencia([]urgenciaSrc{{ID: 7, Descripcion: nil}})
	if err == nil {
		t.Fatal("Expected error for null description, got nil")
	}

	var terr *etl.TransformError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected TransformError, got %T: %v", err, err)
	}
	if terr.Key != "7" {
		t.Errorf("Offending key = %q, want '7'", terr.Key)
	}
}

func TestBuildNovedadSentinelFirst(t *testing.T) {
	rows, err := buildNovedad([]novedadSrc{
		{ID: 1, Nombre: "Dirección errada"},
		{ID: 2, Nombre: "Cliente ausente"},
	})
	if err != nil {
		t.Fatalf("buildNovedad failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	sentinel := rows[0]
	if sentinel.Key != 1 {
		t.Errorf("Sentinel key = %d, want 1", sentinel.Key)
	}
	if sentinel.ID != sinNovedadID || sentinel.Descripcion != sinNovedadDescripcion {
		t.Errorf("Sentinel row wrong: %+v", sentinel)
	}
	if sentinel.Categoria != "Ninguna" {
		t.Errorf("Sentinel category = %q", sentinel.Categoria)
	}
	if rows[1].Categoria != "General" || rows[2].Categoria != "General" {
		t.Errorf("Real rows category wrong: %+v", rows[1:])
	}
}
