package incidents

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// StatusAll en Query.Status desactiva el filtro de estado.
const StatusAll entity.Status = "ALL"

// Query filtro del tablero: estado (o ALL) y texto libre.
type Query struct {
	Status entity.Status // StatusAll o "" = todos
	Search string        // subcadena sin distinguir mayúsculas en título, descripción o ubicación
}

// Filter conserva el orden de entrada. Filter(list, Query{StatusAll, ""}) == list.
func Filter(list []*entity.Incident, q Query) []*entity.Incident {
	out := make([]*entity.Incident, 0, len(list))
	needle := fold(q.Search)
	for _, inc := range list {
		if matches(inc, q.Status, needle) {
			out = append(out, inc)
		}
	}
	return out
}

// Matches informa si inc cumple q.
func Matches(inc *entity.Incident, q Query) bool {
	return matches(inc, q.Status, fold(q.Search))
}

func matches(inc *entity.Incident, status entity.Status, needle string) bool {
	if status != "" && status != StatusAll && inc.Status != status {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(fold(inc.Title), needle) ||
		strings.Contains(fold(inc.Description), needle) ||
		strings.Contains(fold(inc.Location), needle)
}

// fold Caser no es seguro entre goroutines: uno nuevo por llamada.
func fold(s string) string {
	return cases.Fold().String(s)
}
