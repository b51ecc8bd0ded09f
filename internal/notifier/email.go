package notifier

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"boutique/internal/models"
	"boutique/pkg/mailer"

	"github.com/shopspring/decimal"
)

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// StoreName appears in subjects and the email footer.
const StoreName = "NS Luxurious"

var orderEmail = template.Must(template.New("order").Funcs(template.FuncMap{
	"money": money,
	"lineTotal": func(item models.OrderItem) string {
		return decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2)
	},
	"upper": strings.ToUpper,
}).Parse(`<h2>New Order Received - {{.Store}}</h2>
<h3>Order Details:</h3>
<p><strong>Order Number:</strong> {{.Order.OrderNumber}}</p>
<p><strong>Order Date:</strong> {{.Order.CreatedAt.Format "2006-01-02"}}</p>
<p><strong>Total Amount:</strong> ${{money .Order.TotalPrice}}</p>
{{with .Order.User}}
<h3>Customer Information:</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
{{end}}
<h3>Shipping Address:</h3>
{{with .Order.ShippingAddress}}<p>{{.Name}}</p>
<p>{{.Address}}</p>
<p>{{.City}}{{if .PostalCode}}, {{.PostalCode}}{{end}}</p>
{{if .Country}}<p>{{.Country}}</p>
{{end}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
<h3>Order Items:</h3>
<table border="1" cellpadding="10" cellspacing="0" style="border-collapse: collapse; width: 100%;">
<tr style="background-color: #f5f5f5;"><th>Product</th><th>Quantity</th><th>Price</th><th>Total</th></tr>
{{range .Order.OrderItems}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{money .Price}}</td><td>{{lineTotal .}}</td></tr>
{{end}}</table>
{{if .Order.Notes}}<h3>Customer Notes:</h3>
<p>{{.Order.Notes}}</p>
{{end}}<p><strong>Order Status:</strong> {{upper .Order.OrderStatus}}</p>
<hr>
<p><em>This is an automated notification from {{.Store}} e-commerce system.</em></p>
`))

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// EmailNotifier mails new orders to the shop operator.
type EmailNotifier struct {
	mailer Mailer
	from   string
	to     []string
}

// NewEmailNotifier creates an EmailNotifier sending from from to every
// comma separated address in to.
func NewEmailNotifier(m Mailer, from, to string) *EmailNotifier {
	var rcpts []string
	for _, addr := range strings.Split(to, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			rcpts = append(rcpts, addr)
		}
	}
	return &EmailNotifier{mailer: m, from: from, to: rcpts}
}

// NotifyOrderCreated renders and sends the order email.
func (n *EmailNotifier) NotifyOrderCreated(ctx context.Context, order *models.Order) error {
	msg, err := n.Render(order)
	if err != nil {
		return err
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	return nil
}

// Render builds the email for order without sending it.
func (n *EmailNotifier) Render(order *models.Order) (mailer.Message, error) {
	var body bytes.Buffer
	data := struct {
		Store string
		Order *models.Order
	}{StoreName, order}
	if err := orderEmail.Execute(&body, data); err != nil {
		return mailer.Message{}, fmt.Errorf("render order email: %w", err)
	}
	return mailer.Message{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("New Order #%s - %s", order.OrderNumber, StoreName),
		HTML:    body.String(),
	}, nil
}
