package dims

// The registration order mirrors the operational load order: calendar
// dimensions first, then independent entity dimensions, then Dim_Sede,
// which reads Cliente and Geografia back from the warehouse. The
// scheduler honors DependsOn; registration order is only the tiebreak.
func init() {
	Register(fecha{})
	Register(hora{})
	Register(cliente{})
	Register(geografia{})
	Register(sede{})
	Register(mensajero{})
	Register(urgencia{})
	Register(estado{})
	Register(novedad{})
}
