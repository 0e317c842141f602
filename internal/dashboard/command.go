package dashboard

import "DeliveryDashboard/internal/catalog"

// Command is one user action. The set is closed; see the cases in Dispatch.
type Command interface {
	name() string
}

type (
	ListRestaurants struct{}

	GetRestaurant struct {
		ID int
	}

	CreateRestaurant struct {
		Name  string
		Zones []catalog.ZoneInput
	}

	UpdateRestaurant struct {
		ID    int
		Name  string
		Zones []catalog.ZoneInput
	}

	// DeleteRestaurant is sent after the user confirmed the deletion.
	DeleteRestaurant struct {
		ID int
	}

	SearchZones struct {
		Query string
	}

	// Refresh reloads the catalog from storage.
	Refresh struct{}

	Login struct {
		Password string
	}

	Logout struct{}

	SessionStatus struct{}
)

func (ListRestaurants) name() string  { return "list" }
func (GetRestaurant) name() string    { return "get" }
func (CreateRestaurant) name() string { return "create" }
func (UpdateRestaurant) name() string { return "update" }
func (DeleteRestaurant) name() string { return "delete" }
func (SearchZones) name() string      { return "search" }
func (Refresh) name() string          { return "refresh" }
func (Login) name() string            { return "login" }
func (Logout) name() string           { return "logout" }
func (SessionStatus) name() string    { return "session" }

// Name reports the short operation name of cmd, as used in logs and events.
func Name(cmd Command) string {
	return cmd.name()
}

// SearchOutcome separates "no search" (Active false) from "no matches".
type SearchOutcome struct {
	Query   string                 `json:"query"`
	Active  bool                   `json:"active"`
	Results []catalog.SearchResult `json:"results"`
}

// Result carries whatever the command produced; unrelated fields stay zero.
type Result struct {
	Restaurants []catalog.Restaurant
	Restaurant  *catalog.Restaurant
	DeletedID   int
	Search      *SearchOutcome
	Admin       bool
}
