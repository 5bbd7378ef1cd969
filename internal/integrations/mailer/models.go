package mailer

// Message письмо: текстовая часть обязательна, HTML опционален
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}
