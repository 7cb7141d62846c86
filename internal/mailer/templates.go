package mailer

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/sdweddings/backend/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(htmltemplate.FuncMap{"date": formatDate}).ParseFS(templateFS, "templates/*.html.tmpl"))
	textTemplates = texttemplate.Must(texttemplate.New("").Funcs(texttemplate.FuncMap{"date": formatDate}).ParseFS(templateFS, "templates/*.txt.tmpl"))
)

// Business is the sender identity shown in the templates.
type Business struct {
	Name  string
	From  string
	Inbox string
}

// Confirmation builds the thank-you email sent to the person who filled in
// the contact form.
func Confirmation(b Business, in domain.Inquiry) (Message, error) {
	return render(b, in, "confirmation", Message{
		From:    b.From,
		To:      []string{in.Email},
		ReplyTo: b.Inbox,
		Subject: "Thanks for reaching out to " + b.Name,
	})
}

// Notification builds the internal email that tells the business a new
// inquiry arrived. Replies go straight to the couple.
func Notification(b Business, in domain.Inquiry) (Message, error) {
	return render(b, in, "notification", Message{
		From:    b.From,
		To:      []string{b.Inbox},
		ReplyTo: in.Email,
		Subject: "New inquiry from " + in.Name,
	})
}

func render(b Business, in domain.Inquiry, name string, msg Message) (Message, error) {
	data := struct {
		Business Business
		Inquiry  domain.Inquiry
	}{b, in}

	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Message{}, err
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.tmpl", data); err != nil {
		return Message{}, err
	}
	msg.HTML = html.String()
	msg.Text = text.String()
	return msg, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not decided yet"
	}
	return t.Format("Monday, January 2, 2006")
}
