package entity

// User is a registered connection record: one live connection bound to one
// display name. The last registration for a name wins.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
