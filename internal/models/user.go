package models

import (
	"time"
)

// Session is the identity stored under the currentUser key.
type Session struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
