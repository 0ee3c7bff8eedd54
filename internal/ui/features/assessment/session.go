package assessment

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/pkg/core"
)

const (
	sessionName = "planportal"
	projectKey  = "project"
)

// defaultProject pre-fills the form on a first visit.
func defaultProject() core.ProjectDescription {
	return core.ProjectDescription{
		ProjectName:          "Nytt prosjekt",
		Location:             "Oslo",
		ProjectType:          core.ProjectTypeResidential,
		BuildingHeight:       12,
		ResidentialUnits:     24,
		ParkingSpaces:        10,
		ConstructionDuration: 18,
		ZoneType:             "bolig",
	}
}

// loadProject returns the last project the visitor assessed, or the
// default project when the session is empty or unreadable.
func loadProject(store sessions.Store, r *http.Request) core.ProjectDescription {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return defaultProject()
	}
	raw, ok := session.Values[projectKey].(string)
	if !ok {
		return defaultProject()
	}
	var p core.ProjectDescription
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return defaultProject()
	}
	return p
}

// saveProject remembers p in the visitor's session. It writes a cookie
// header, so it must run before the SSE stream is opened.
func saveProject(store sessions.Store, w http.ResponseWriter, r *http.Request, p core.ProjectDescription) error {
	session, err := store.Get(r, sessionName)
	if err != nil && session == nil {
		return err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	session.Values[projectKey] = string(raw)
	return session.Save(r, w)
}
