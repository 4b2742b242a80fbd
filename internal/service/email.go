package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendRequestApprovedNotification(ctx context.Context, email, name string, start, end time.Time, adminNotes string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour lab booking was approved for %s until %s.",
		name, start.Format("Mon, 02 Jan 2006 15:04"), end.Format("Mon, 02 Jan 2006 15:04"))
	if adminNotes != "" {
		body += fmt.Sprintf("\n\nNotes from staff: %s", adminNotes)
	}
	body += "\n\nBest regards,\nThe LabReserve Team"
	return s.send(email, "Lab Booking Approved", body)
}

func (s *emailService) SendRequestRejectedNotification(ctx context.Context, email, name, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour lab booking request was rejected.\n\nReason: %s\n\nBest regards,\nThe LabReserve Team", name, reason)
	return s.send(email, "Lab Booking Rejected", body)
}

func (s *emailService) SendPaymentReceiptNotification(ctx context.Context, email, name string, amountCents int64, itemType string) error {
	body := fmt.Sprintf("Hello %s,\n\nWe received your payment of %.2f (%s).\n\nBest regards,\nThe LabReserve Team",
		name, float64(amountCents)/100, itemType)
	return s.send(email, "Payment Received", body)
}

func (s *emailService) SendScheduleReminderNotification(ctx context.Context, email, name string, start time.Time) error {
	body := fmt.Sprintf("Hello %s,\n\nThis is a reminder that your lab session starts at %s.\n\nBest regards,\nThe LabReserve Team",
		name, start.Format("Mon, 02 Jan 2006 15:04"))
	return s.send(email, "Upcoming Lab Session", body)
}
