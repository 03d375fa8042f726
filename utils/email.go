package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// email request payload for the ZeptoMail API
type emailRequest struct {
	From     emailAddress  `json:"from"`
	To       []toRecipient `json:"to"`
	Subject  string        `json:"subject"`
	HtmlBody string        `json:"htmlbody"`
}

type emailAddress struct {
	Address string `json:"address"`
}

type toRecipient struct {
	Email emailWithName `json:"email_address"`
}

type emailWithName struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Mailer sends transactional email through the ZeptoMail HTTP API.
type Mailer struct {
	apiURL string
	apiKey string
	from   string
}

// NewMailer returns nil when the email settings are absent; callers treat a
// nil mailer as "receipts disabled".
func NewMailer(apiURL, apiKey, from string) *Mailer {
	if apiURL == "" || apiKey == "" || from == "" {
		return nil
	}
	return &Mailer{apiURL: apiURL, apiKey: apiKey, from: from}
}

// SendReceipt emails a payment receipt after a successful reconciliation.
func (m *Mailer) SendReceipt(to, clubName string, amount float64, transactionID string) error {
	subject := fmt.Sprintf("Payment received for %s", clubName)
	body := fmt.Sprintf(
		"<p>Your payment of <b>$%.2f</b> for <b>%s</b> has been received.</p><p>Transaction: %s</p>",
		amount, clubName, transactionID,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	payload := emailRequest{
		From:     emailAddress{Address: m.from},
		To:       []toRecipient{{Email: emailWithName{Address: to, Name: to}}},
		Subject:  subject,
		HtmlBody: body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.apiURL, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email send failed with status %d", resp.StatusCode)
	}
	return nil
}
