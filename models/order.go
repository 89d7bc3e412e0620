package models

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusConfirmed  OrderStatus = "CONFIRMED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
	StatusRefunded   OrderStatus = "REFUNDED"
)

var orderStatuses = map[string]OrderStatus{
	"PENDING":    StatusPending,
	"CONFIRMED":  StatusConfirmed,
	"PROCESSING": StatusProcessing,
	"SHIPPED":    StatusShipped,
	"DELIVERED":  StatusDelivered,
	"CANCELLED":  StatusCancelled,
	"REFUNDED":   StatusRefunded,
}

// ParseOrderStatus is case-insensitive; "shipped" and "SHIPPED" both resolve.
func ParseOrderStatus(s string) (OrderStatus, error) {
	if status, ok := orderStatuses[strings.ToUpper(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("invalid order status: %q", s)
}

type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ItemsTotal sums the per-item totals.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}

// RecalculateItems re-derives every item's TotalPrice from its quantity and
// unit price. Needed after JSON decoding, where TotalPrice arrives as
// whatever the client sent.
func (o *Order) RecalculateItems() {
	for i := range o.Items {
		o.Items[i].recalculate()
	}
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

func NewOrderItem(productID, productName string, quantity int, unitPrice float64) OrderItem {
	item := OrderItem{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	item.recalculate()
	return item
}

// SetQuantity updates the quantity and keeps TotalPrice derived.
func (i *OrderItem) SetQuantity(quantity int) {
	i.Quantity = quantity
	i.recalculate()
}

// SetUnitPrice updates the unit price and keeps TotalPrice derived.
func (i *OrderItem) SetUnitPrice(unitPrice float64) {
	i.UnitPrice = unitPrice
	i.recalculate()
}

func (i *OrderItem) recalculate() {
	i.TotalPrice = i.UnitPrice * float64(i.Quantity)
}

type OrderEvent struct {
	OrderID    string      `json:"orderId"`
	CustomerID string      `json:"customerId"`
	Type       string      `json:"type"` // created, status_updated, payment_check
	Status     OrderStatus `json:"status"`
	Total      float64     `json:"total"`
	Occurred   time.Time   `json:"occurred"`
}
