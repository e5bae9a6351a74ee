package mailer

import (
	"errors"
	"fmt"
	"os"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var h = hermes.Hermes{
	Product: hermes.Product{
		Name: "PlayoffPredictor",
		Link: os.Getenv("APP_BASE_URL"),
	},
}

func send(toEmail, subject string, email hermes.Email) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return errors.New("SENDGRID_API_KEY not set")
	}

	body, err := h.GenerateHTML(email)
	if err != nil {
		return err
	}
	plain, err := h.GeneratePlainText(email)
	if err != nil {
		return err
	}

	from := mail.NewEmail("PlayoffPredictor", os.Getenv("MAIL_FROM"))
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, body)

	client := sendgrid.NewSendClient(apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// SendMagicLink emails a single-use sign-in link.
func SendMagicLink(toEmail, name, link string) error {
	return send(toEmail, "Your PlayoffPredictor sign-in link", hermes.Email{
		Body: hermes.Body{
			Name:   name,
			Intros: []string{"Use the button below to sign in. The link is valid for 15 minutes and works once."},
			Actions: []hermes.Action{{
				Instructions: "Click to sign in:",
				Button: hermes.Button{
					Color: "#22BC66",
					Text:  "Sign in",
					Link:  link,
				},
			}},
			Outros: []string{"If you did not request this link, you can safely ignore this email."},
		},
	})
}

// SendPasswordReset emails a single-use password reset link.
func SendPasswordReset(toEmail, name, link string) error {
	return send(toEmail, "Reset your PlayoffPredictor password", hermes.Email{
		Body: hermes.Body{
			Name:   name,
			Intros: []string{"A password reset was requested for your account."},
			Actions: []hermes.Action{{
				Instructions: "Click to choose a new password:",
				Button: hermes.Button{
					Color: "#DC4D2F",
					Text:  "Reset password",
					Link:  link,
				},
			}},
			Outros: []string{"If you did not request a reset, no action is needed."},
		},
	})
}

// SendGroupInvite emails a join link for a group.
func SendGroupInvite(toEmail, groupName, link string) error {
	return send(toEmail, "You're invited to a PlayoffPredictor pool", hermes.Email{
		Body: hermes.Body{
			Intros: []string{fmt.Sprintf("You have been invited to join the pool %q.", groupName)},
			Actions: []hermes.Action{{
				Instructions: "Join the pool here:",
				Button: hermes.Button{
					Text: "Join pool",
					Link: link,
				},
			}},
		},
	})
}
