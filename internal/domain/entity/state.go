package entity

// Session usuario autenticado y empresa activa.
type Session struct {
	CurrentUser    *User    `json:"currentUser"`
	CurrentCompany *Company `json:"currentCompany"`
}

// Active indica si hay un usuario con sesión iniciada y empresa activa.
func (s Session) Active() bool {
	return s.CurrentUser != nil && s.CurrentCompany != nil
}

// State es el estado completo del portal. Se persiste como un único documento JSON.
type State struct {
	Session
	Users        []User        `json:"users"`
	Companies    []Company     `json:"companies"`
	Products     []Product     `json:"products"`
	Reports      []Report      `json:"reports"`
	ActivityLog  []ActivityLog `json:"activityLog"`
	ChatMessages []ChatMessage `json:"chatMessages"`
}
