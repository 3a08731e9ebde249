package service

import (
	"errors"
	"fmt"
	"venturas/murmur-api/model"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer delivers verification links. Behind an interface so handler
// tests can swap in a stub instead of a live SMTP server.
type Mailer interface {
	SendVerificationMail(t *model.VerificationToken, sendTo, name string) error
}

// SMTPMailer sends mail through the SMTP server from the mail.*
// config section.
type SMTPMailer struct{}

func (SMTPMailer) SendVerificationMail(t *model.VerificationToken, sendTo, name string) error {
	from := viper.GetString("mail.sender")
	if from == "" || sendTo == from {
		return errors.New("invalid email address")
	}

	verifLink := fmt.Sprintf("%v/verify-email?token=%v",
		viper.GetString("host.cors_origin"), t.Token)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Verify your email address for Venturas")
	m.SetBody("text/html", fmt.Sprintf(
		"Hi %v,<br><br>Click <a href='%v'>here</a> to verify your account.<br><br>This link will expire in 24 hours.",
		name, verifLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	if err := d.DialAndSend(m); err != nil {
		return err
	}

	return nil
}
