package models

// Principal is an authenticated user.
type Principal struct {
	UID         string `json:"uid" bson:"uid"`
	DisplayName string `json:"displayName" bson:"displayName"`
	Email       string `json:"email" bson:"email"`
	PhotoURL    string `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
}

// Credentials are what a client presents to sign in. The local backend
// ignores them.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
