package domain

// ClientDraft holds client-creation input while the checkout is in
// StateClientCreation. It survives validation and network failures so
// the user never retypes a form.
type ClientDraft struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}
