package datatable

import "fmt"

// State is a serializable snapshot of everything a user can change on a
// table. Selected holds record ids in their KeyOf form.
type State struct {
	Sort     SortState `json:"sort"`
	Page     int       `json:"page"`
	PerPage  int       `json:"perPage"`
	Search   string    `json:"search,omitempty"`
	Filters  []Filter  `json:"filters,omitempty"`
	Selected []string  `json:"selected,omitempty"`
}

// KeyOf returns the string key used for a record id in URLs and State.
func KeyOf[ID comparable](id ID) string {
	return fmt.Sprint(id)
}
