package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kay-mensah/DataPlug/models"
	"gopkg.in/gomail.v2"
)

// EmailConfigured reports whether SMTP settings are present. Receipts are
// skipped entirely when they are not.
func EmailConfigured() bool {
	return os.Getenv("SMTP_HOST") != ""
}

// SendPurchaseReceipt emails a receipt for a completed bundle purchase.
// Best-effort: callers log failures and move on.
func SendPurchaseReceipt(to, fullName string, order *models.Order) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your DataPlug receipt - Order #%d", order.ID))

	body := fmt.Sprintf(`
		<h2>Thanks for your purchase, %s!</h2>
		<p>Your data bundle has been delivered.</p>
		<ul>
			<li>Order: #%d</li>
			<li>Bundle: %s %s</li>
			<li>Recipient: %s</li>
			<li>Amount: %s</li>
			<li>Reference: %s</li>
		</ul>
		<p>The bundle should arrive on the recipient's phone within a few minutes.</p>
	`, fullName, order.ID, order.Bundle.Capacity, order.Bundle.Network,
		order.ReceiverPhone, FormatCedis(order.Amount), order.TransactionID)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send receipt email: %v", err)
	}
	return nil
}
