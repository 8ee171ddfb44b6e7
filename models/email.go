package models

// EmailMessage is one outbound e-mail handed to the dispatch worker.
// HTML is the rendered body; there is no plaintext alternative.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}
