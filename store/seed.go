package store

import (
	"time"

	"user-order-service/models"
)

// SeedUsers loads the sample users present at process start.
func SeedUsers(users *Store[models.User]) {
	users.Put("1", models.User{ID: "1", Name: "John Doe", Email: "john@example.com"})
	users.Put("2", models.User{ID: "2", Name: "Jane Smith", Email: "jane@example.com"})
}

// SeedOrders loads the sample orders present at process start.
func SeedOrders(orders *Store[models.Order]) {
	now := time.Now()

	items1 := []models.OrderItem{
		models.NewOrderItem("prod-1", "Laptop", 1, 999.99),
		models.NewOrderItem("prod-2", "Mouse", 2, 29.99),
	}
	order1 := models.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		Items:      items1,
		Status:     models.StatusConfirmed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order1.TotalAmount = order1.ItemsTotal()
	orders.Put(order1.ID, order1)

	items2 := []models.OrderItem{
		models.NewOrderItem("prod-3", "Keyboard", 1, 79.99),
		models.NewOrderItem("prod-4", "Monitor", 1, 299.99),
	}
	order2 := models.Order{
		ID:         "order-2",
		CustomerID: "customer-2",
		Items:      items2,
		Status:     models.StatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	order2.TotalAmount = order2.ItemsTotal()
	orders.Put(order2.ID, order2)
}
