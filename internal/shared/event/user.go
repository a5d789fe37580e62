package event

// UserDestination is the topic or subject that carries user lifecycle events.
const UserDestination string = "users"

// UserMessage is the wire shape of a user lifecycle event.
type UserMessage struct {
	Kind         string `json:"kind"`
	UserID       int64  `json:"user_id"`
	GivenNames   string `json:"given_names"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	MobileNumber string `json:"mobile_number"`
	OccurredAt   int64  `json:"occurred_at"`
}
