package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// FormatNumber arma el número de documento: prefijo + "-" + n con al menos 4 dígitos.
// Desde 10000 se imprime completo, sin truncar.
func FormatNumber(t entity.DocumentType, n int64) string {
	return fmt.Sprintf("%s-%04d", t.Prefix(), n)
}

// ParseNumber extrae la parte numérica de un número del tipo dado (RCP-0042 -> 42).
func ParseNumber(t entity.DocumentType, number string) (int64, bool) {
	rest, ok := strings.CutPrefix(number, t.Prefix()+"-")
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
