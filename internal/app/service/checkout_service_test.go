package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/internal/app/repository"
	"github.com/mirakh/gallery-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMailer struct {
	confirmations int
	alerts        int
	fail          bool
}

func (m *fakeMailer) SendOrderConfirmation(order *model.Order) error {
	m.confirmations++
	if m.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *fakeMailer) SendAdminOrderAlert(order *model.Order) error {
	m.alerts++
	if m.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (m *fakeMailer) SendContactNotification(contact *model.Contact) error { return nil }
func (m *fakeMailer) SendContactConfirmation(contact *model.Contact) error { return nil }

type fakeNotifier struct {
	orders []*model.Order
}

func (n *fakeNotifier) BroadcastOrder(order *model.Order) {
	n.orders = append(n.orders, order)
}

func setupCheckoutServiceTest(t *testing.T) (*checkoutService, *fakeMailer, *fakeNotifier, *model.Painting, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	orderRepo := repository.NewOrderRepository(testDB)
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	svc := NewCheckoutService(orderRepo, mailer, notifier, testDB).(*checkoutService)

	painting := &model.Painting{
		Title:    "Winter Pines",
		Category: model.CategoryLandscape,
		Price:    820,
	}
	require.NoError(t, testDB.Create(painting).Error)

	return svc, mailer, notifier, painting, testDB
}

func validCheckoutInput(paintingID uint) CheckoutInput {
	return CheckoutInput{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   "555-0101",
		ShippingAddress: "1 Gallery Lane",
		TotalAmount:     1640,
		Items: []CheckoutItemInput{
			{PaintingID: paintingID, Quantity: 2, Price: 820},
		},
	}
}

func TestCheckoutService_PlaceOrder_Success(t *testing.T) {
	svc, mailer, notifier, painting, testDB := setupCheckoutServiceTest(t)

	order, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[A-F0-9]{8}$`), order.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 1640.0, order.TotalAmount)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, 2, order.OrderItems[0].Quantity)
	assert.Equal(t, 820.0, order.OrderItems[0].Price)

	var orderCount, itemCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	testDB.Model(&model.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), itemCount)

	// Both notification channels fired.
	assert.Equal(t, 1, mailer.confirmations)
	assert.Equal(t, 1, mailer.alerts)
	require.Len(t, notifier.orders, 1)
	assert.Equal(t, order.OrderNumber, notifier.orders[0].OrderNumber)
}

func TestCheckoutService_PlaceOrder_MultipleItems(t *testing.T) {
	svc, _, _, painting, testDB := setupCheckoutServiceTest(t)

	other := &model.Painting{Title: "Spring Creek", Category: model.CategoryLandscape, Price: 430}
	require.NoError(t, testDB.Create(other).Error)

	input := validCheckoutInput(painting.ID)
	input.Items = append(input.Items, CheckoutItemInput{PaintingID: other.ID, Quantity: 1, Price: 430})
	input.TotalAmount = 2070

	order, err := svc.PlaceOrder(input)
	require.NoError(t, err)
	assert.Len(t, order.OrderItems, 2)

	var itemCount int64
	testDB.Model(&model.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount)
}

func TestCheckoutService_PlaceOrder_ValidationRejectsBeforeWrite(t *testing.T) {
	svc, mailer, _, painting, testDB := setupCheckoutServiceTest(t)

	cases := []struct {
		name   string
		mutate func(*CheckoutInput)
	}{
		{"missing name", func(i *CheckoutInput) { i.CustomerName = "  " }},
		{"missing email", func(i *CheckoutInput) { i.CustomerEmail = "" }},
		{"no items", func(i *CheckoutInput) { i.Items = nil }},
		{"zero quantity", func(i *CheckoutInput) { i.Items[0].Quantity = 0 }},
		{"negative quantity", func(i *CheckoutInput) { i.Items[0].Quantity = -1 }},
		{"negative price", func(i *CheckoutInput) { i.Items[0].Price = -5 }},
		{"zero painting id", func(i *CheckoutInput) { i.Items[0].PaintingID = 0 }},
		{"negative total", func(i *CheckoutInput) { i.TotalAmount = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validCheckoutInput(painting.ID)
			tc.mutate(&input)
			_, err := svc.PlaceOrder(input)
			assert.ErrorIs(t, err, ErrInvalidCheckout)
		})
	}

	// Nothing was written and nobody was notified.
	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, 0, mailer.confirmations)
}

func TestCheckoutService_PlaceOrder_CollisionRetryThenSuccess(t *testing.T) {
	svc, _, _, painting, testDB := setupCheckoutServiceTest(t)

	existing := &model.Order{
		OrderNumber:   "ORD-AAAA0001",
		CustomerName:  "Earlier Buyer",
		CustomerEmail: "early@example.com",
		TotalAmount:   100,
	}
	require.NoError(t, testDB.Create(existing).Error)

	// Collide twice, then yield a fresh number.
	numbers := []string{"ORD-AAAA0001", "ORD-AAAA0001", "ORD-BBBB0002"}
	idx := 0
	svc.genOrderNumber = func() string {
		n := numbers[idx]
		if idx < len(numbers)-1 {
			idx++
		}
		return n
	}

	order, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)
	assert.Equal(t, "ORD-BBBB0002", order.OrderNumber)
}

func TestCheckoutService_PlaceOrder_CollisionRetryExhausted(t *testing.T) {
	svc, mailer, _, painting, testDB := setupCheckoutServiceTest(t)

	existing := &model.Order{
		OrderNumber:   "ORD-AAAA0001",
		CustomerName:  "Earlier Buyer",
		CustomerEmail: "early@example.com",
		TotalAmount:   100,
	}
	require.NoError(t, testDB.Create(existing).Error)

	svc.genOrderNumber = func() string {
		return "ORD-AAAA0001"
	}

	_, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	assert.ErrorIs(t, err, ErrOrderNumberConflict)

	// Only the pre-existing order remains; the failed attempt left no rows.
	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, 0, mailer.confirmations)
}

func TestCheckoutService_PlaceOrder_RollsBackOnItemFailure(t *testing.T) {
	svc, mailer, notifier, painting, testDB := setupCheckoutServiceTest(t)

	// Sabotage the item insert so the transaction fails after the order row.
	require.NoError(t, testDB.Migrator().DropTable(&model.OrderItem{}))

	_, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.Error(t, err)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, 0, mailer.confirmations)
	assert.Len(t, notifier.orders, 0)
}

func TestCheckoutService_PlaceOrder_MailFailureIsNonFatal(t *testing.T) {
	svc, mailer, notifier, painting, testDB := setupCheckoutServiceTest(t)
	mailer.fail = true

	order, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)

	var orderCount int64
	testDB.Model(&model.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
	// The feed still fired even though mail failed.
	assert.Len(t, notifier.orders, 1)
}

func TestCheckoutService_PlaceOrder_NilNotifierAndMailer(t *testing.T) {
	svc, _, _, painting, _ := setupCheckoutServiceTest(t)
	svc.mailer = nil
	svc.notifier = nil

	order, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestCheckoutService_GetOrderByNumber(t *testing.T) {
	svc, _, _, painting, _ := setupCheckoutServiceTest(t)

	placed, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)

	order, err := svc.GetOrderByNumber(placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, order.ID)
	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, painting.Title, order.OrderItems[0].Painting.Title)

	_, err = svc.GetOrderByNumber("ORD-DEADBEEF")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutService_UpdateOrderStatus(t *testing.T) {
	svc, _, _, painting, _ := setupCheckoutServiceTest(t)

	placed, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderStatus(placed.ID, model.OrderStatusConfirmed))

	order, err := svc.GetOrderByNumber(placed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)

	assert.ErrorIs(t, svc.UpdateOrderStatus(99999, model.OrderStatusShipped), ErrOrderNotFound)
	assert.ErrorIs(t, svc.UpdateOrderStatus(placed.ID, ""), ErrInvalidOrderStatus)
}

func TestCheckoutService_ExportOrdersXLSX(t *testing.T) {
	svc, _, _, painting, _ := setupCheckoutServiceTest(t)

	_, err := svc.PlaceOrder(validCheckoutInput(painting.ID))
	require.NoError(t, err)

	buf, err := svc.ExportOrdersXLSX()
	require.NoError(t, err)
	assert.Greater(t, buf.Len(), 0)
}
