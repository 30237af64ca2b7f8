package reports

import "fmt"

// Nombres de mes en castellano, como los muestra el portal.
var MonthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// FormatPeriod arma "Marzo 2024". Un mes fuera de rango deja el nombre
// vacío (" 2024"); se mantiene tal cual por compatibilidad con el front.
func FormatPeriod(month, year int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}
