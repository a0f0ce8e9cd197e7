package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type OrderConfirmationData struct {
	OrderCode   string
	EventName   string
	EventDate   string
	Seats       string
	TicketCodes []string
	TotalAmount float64
	PaymentMode string
}

type RefundResultData struct {
	OrderCode string
	EventName string
	Approved  bool
	Amount    float64
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<h2>Your tickets for {{.EventName}}</h2>
<p>Order <b>{{.OrderCode}}</b> is confirmed.</p>
<p>Date: {{.EventDate}}<br>Seats: {{.Seats}}<br>Total: {{printf "%.2f" .TotalAmount}} ({{.PaymentMode}})</p>
<ul>{{range .TicketCodes}}<li>{{.}}</li>{{end}}</ul>
<p>Show the QR code below at the entry gate.</p>
<img src="cid:qr_entry_code" alt="entry QR">
`))

var refundTmpl = template.Must(template.New("refund").Parse(`
<h2>Refund {{if .Approved}}approved{{else}}rejected{{end}}</h2>
<p>Order <b>{{.OrderCode}}</b> for {{.EventName}}.</p>
{{if .Approved}}<p>{{printf "%.2f" .Amount}} will be returned to your payment method.</p>{{end}}
`))

func smtpDialer() *gomail.Dialer {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return gomail.NewDialer(os.Getenv("SMTP_HOST"), port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}

// SendOrderConfirmationEmail sends the ticket email with the order QR embedded
// inline. Runs async so the booking response is not delayed.
func SendOrderConfirmationEmail(to string, data OrderConfirmationData) {
	go func() {
		var body bytes.Buffer
		if err := confirmationTmpl.Execute(&body, data); err != nil {
			log.Printf("render confirmation email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Tickets confirmed - order "+data.OrderCode)
		m.SetBody("text/html", body.String())

		if qrBytes, err := GenerateQRCode(data.OrderCode, 400); err == nil {
			m.Embed("qr_entry.png",
				gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(qrBytes)
					return err
				}),
				gomail.SetHeader(map[string][]string{
					"Content-Type":        {"image/png"},
					"Content-ID":          {"<qr_entry_code>"},
					"Content-Disposition": {"inline"},
				}),
			)
		}

		if err := smtpDialer().DialAndSend(m); err != nil {
			log.Printf("send confirmation email to %s: %v", to, err)
		}
	}()
}

// SendRefundResultEmail notifies the customer after a refund request is resolved.
func SendRefundResultEmail(to string, data RefundResultData) {
	go func() {
		var body bytes.Buffer
		if err := refundTmpl.Execute(&body, data); err != nil {
			log.Printf("render refund email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Refund update - order "+data.OrderCode)
		m.SetBody("text/html", body.String())

		if err := smtpDialer().DialAndSend(m); err != nil {
			log.Printf("send refund email to %s: %v", to, err)
		}
	}()
}
