package schedule

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Search returns the first team member whose name or staff id contains
// term, ignoring case. A blank term matches nobody.
func Search(team []Person, term string) (Person, bool) {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(term))
	if needle == "" {
		return Person{}, false
	}
	for _, p := range team {
		if strings.Contains(fold.String(p.Name), needle) ||
			strings.Contains(strconv.Itoa(p.StaffID), needle) {
			return p, true
		}
	}
	return Person{}, false
}
