// Package event defines the messages and destinations shared between modules
// and external consumers.
package event

// UserRegisteredDestination is the topic for new account events.
const UserRegisteredDestination = "user_registered"

// UserRegisteredMessage announces a newly created account.
type UserRegisteredMessage struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}
