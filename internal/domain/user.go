package domain

// User is the signed-in identity kept across restarts.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Token    string `json:"token,omitempty"`
}

// LoggedIn reports whether the identity carries a usable session.
func (u User) LoggedIn() bool {
	return u.ID > 0 && u.Token != ""
}
