package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"boutique/internal/models"
	"boutique/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, routingKey string, v any) error {
	args := m.Called(ctx, routingKey, v)
	return args.Error(0)
}

func sampleOrder() *models.Order {
	return &models.Order{
		ID:          "order-1",
		UserID:      "user-1",
		User:        &models.User{Name: "Siti", Email: "siti@example.com", Phone: "0812"},
		OrderNumber: "NS1700000000000123",
		OrderItems: []models.OrderItem{
			{Name: "Silk <Dress>", Quantity: 2, Price: 19.99},
			{Name: "Belt", Quantity: 1, Price: 5},
		},
		ShippingAddress: models.ShippingAddress{Name: "Siti", Address: "Jl. Mawar 1", City: "Bandung", Phone: "0812", PostalCode: "40111"},
		TotalPrice:      44.98,
		Notes:           "gift wrap",
		OrderStatus:     models.OrderStatusPending,
		CreatedAt:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestEmailNotifier_Render(t *testing.T) {
	n := NewEmailNotifier(nil, "shop@example.com", "ops@example.com, owner@example.com,")

	msg, err := n.Render(sampleOrder())
	require.NoError(t, err)

	assert.Equal(t, "shop@example.com", msg.From)
	assert.Equal(t, []string{"ops@example.com", "owner@example.com"}, msg.To)
	assert.Equal(t, "New Order #NS1700000000000123 - NS Luxurious", msg.Subject)
	assert.Contains(t, msg.HTML, "<td>39.98</td>")
	assert.Contains(t, msg.HTML, "$44.98")
	assert.Contains(t, msg.HTML, "Silk &lt;Dress&gt;")
	assert.Contains(t, msg.HTML, "Bandung, 40111")
	assert.Contains(t, msg.HTML, "siti@example.com")
	assert.Contains(t, msg.HTML, "gift wrap")
	assert.Contains(t, msg.HTML, "PENDING")
	assert.Contains(t, msg.HTML, "2024-03-01")
}

func TestEmailNotifier_RenderWithoutUser(t *testing.T) {
	order := sampleOrder()
	order.User = nil
	order.Notes = ""

	msg, err := NewEmailNotifier(nil, "a@b", "c@d").Render(order)
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "Customer Information")
	assert.NotContains(t, msg.HTML, "Customer Notes")
}

func TestEmailNotifier_SendError(t *testing.T) {
	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.AnythingOfType("mailer.Message")).Return(errors.New("smtp down"))

	err := NewEmailNotifier(m, "a@b", "c@d").NotifyOrderCreated(context.Background(), sampleOrder())
	assert.ErrorContains(t, err, "smtp down")
	m.AssertExpectations(t)
}

func TestBrokerNotifier(t *testing.T) {
	p := new(MockPublisher)
	p.On("PublishJSON", mock.Anything, OrderCreatedKey, mock.MatchedBy(func(e OrderCreatedEvent) bool {
		return e.OrderNumber == "NS1700000000000123" && e.ItemCount == 3 && e.UserID == "user-1"
	})).Return(nil)

	err := NewBrokerNotifier(p).NotifyOrderCreated(context.Background(), sampleOrder())
	assert.NoError(t, err)
	p.AssertExpectations(t)
}

func TestFanout_JoinsErrors(t *testing.T) {
	m := new(MockMailer)
	m.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	p := new(MockPublisher)
	p.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	f := Fanout{NewEmailNotifier(m, "a@b", "c@d"), NewBrokerNotifier(p), LogNotifier{}}
	err := f.NotifyOrderCreated(context.Background(), sampleOrder())

	assert.ErrorContains(t, err, "smtp down")
	p.AssertExpectations(t)
}
