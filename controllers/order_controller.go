package controllers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"user-order-service/middlewares"
	"user-order-service/models"
	"user-order-service/utils"
)

func ListOrders(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "list", status)
	}()

	handleBlocking(c, dispatcher.Default(), "list-orders", func() (*response, error) {
		log.Printf("Fetching all orders")
		// 模拟数据库操作
		time.Sleep(150 * time.Millisecond)

		return ok(orderStore.List()), nil
	})
}

func GetOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "get", status)
	}()
	orderID := c.Param("id")

	handleBlocking(c, dispatcher.Default(), "get-order", func() (*response, error) {
		log.Printf("Fetching order with ID: %s", orderID)
		// 模拟数据库查询
		time.Sleep(75 * time.Millisecond)

		order, found := orderStore.Get(orderID)
		if !found {
			return nil, errNotFound("Order not found")
		}
		return ok(order), nil
	})
}

func CreateOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "create", status)
	}()

	var newOrder models.Order
	if err := c.ShouldBindJSON(&newOrder); err != nil || newOrder.CustomerID == "" || len(newOrder.Items) == 0 {
		sendError(c, 400, "Invalid order data")
		return
	}

	handleBlocking(c, dispatcher.Default(), "create-order", func() (*response, error) {
		log.Printf("Creating new order for customer: %s", newOrder.CustomerID)
		// 模拟订单处理
		time.Sleep(300 * time.Millisecond)

		newOrder.ID = utils.NextID("order")

		// totalPrice 是派生值，重算后再汇总
		newOrder.RecalculateItems()
		newOrder.TotalAmount = newOrder.ItemsTotal()
		newOrder.Status = models.StatusPending

		now := time.Now()
		newOrder.CreatedAt = now
		newOrder.UpdatedAt = now

		orderStore.Put(newOrder.ID, newOrder)

		publishOrderEvent(newOrder, "created")

		return created(newOrder), nil
	})
}

func UpdateOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "update", status)
	}()
	orderID := c.Param("id")

	var updatedOrder models.Order
	if err := c.ShouldBindJSON(&updatedOrder); err != nil {
		sendError(c, 400, "Invalid order data")
		return
	}

	handleBlocking(c, dispatcher.Default(), "update-order", func() (*response, error) {
		log.Printf("Updating order with ID: %s", orderID)
		// 模拟数据库更新
		time.Sleep(200 * time.Millisecond)

		existing, found := orderStore.Get(orderID)
		if !found {
			return nil, errNotFound("Order not found")
		}

		// 整体替换，保留ID和创建时间
		updatedOrder.ID = orderID
		updatedOrder.CreatedAt = existing.CreatedAt
		updatedOrder.UpdatedAt = time.Now()

		// 仅当替换内容带订单项时重算总额
		if len(updatedOrder.Items) > 0 {
			updatedOrder.RecalculateItems()
			updatedOrder.TotalAmount = updatedOrder.ItemsTotal()
		}

		orderStore.Put(orderID, updatedOrder)

		return ok(updatedOrder), nil
	})
}

func DeleteOrder(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "delete", status)
	}()
	orderID := c.Param("id")

	handleBlocking(c, dispatcher.Default(), "delete-order", func() (*response, error) {
		log.Printf("Deleting order with ID: %s", orderID)
		// 模拟数据库删除
		time.Sleep(120 * time.Millisecond)

		if _, found := orderStore.Remove(orderID); !found {
			return nil, errNotFound("Order not found")
		}
		return ok(gin.H{"message": "Order deleted successfully"}), nil
	})
}

func UpdateOrderStatus(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "update_status", status)
	}()
	orderID := c.Param("id")

	var request struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.Status == "" {
		sendError(c, 400, "Status is required")
		return
	}

	handleBlocking(c, dispatcher.Default(), "update-order-status", func() (*response, error) {
		log.Printf("Updating status for order: %s", orderID)
		// 模拟状态更新
		time.Sleep(100 * time.Millisecond)

		order, found := orderStore.Get(orderID)
		if !found {
			return nil, errNotFound("Order not found")
		}

		newStatus, err := models.ParseOrderStatus(request.Status)
		if err != nil {
			return nil, errInvalidInput("Invalid status value")
		}

		order.Status = newStatus
		order.UpdatedAt = time.Now()
		orderStore.Put(orderID, order)

		publishOrderEvent(order, "status_updated")

		return ok(order), nil
	})
}

// CalculateOrderTotal computes tax, shipping and discount on the dedicated
// pool; it stands in for an expensive pricing computation.
func CalculateOrderTotal(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("order", "calculate_total", status)
	}()
	orderID := c.Param("id")

	handleBlocking(c, dedicatedPool, "calculate-order-total", func() (*response, error) {
		log.Printf("Calculating total for order: %s", orderID)

		order, found := orderStore.Get(orderID)
		if !found {
			return nil, errNotFound("Order not found")
		}

		// 模拟复杂计算
		time.Sleep(500 * time.Millisecond)

		subtotal := order.ItemsTotal()
		tax := subtotal * 0.08

		shipping := 9.99
		if subtotal >= 100 {
			shipping = 0
		}

		discount := 0.0
		if subtotal >= 500 {
			discount = subtotal * 0.05
		}

		finalTotal := subtotal + tax + shipping - discount

		return ok(gin.H{
			"orderId":      orderID,
			"subtotal":     subtotal,
			"tax":          tax,
			"shipping":     shipping,
			"discount":     discount,
			"finalTotal":   finalTotal,
			"calculatedAt": time.Now().UnixMilli(),
		}), nil
	})
}

// publishOrderEvent sends the lifecycle event when a publisher is wired;
// large totals and cancellations jump the queue. Creation also schedules the
// delayed payment check.
func publishOrderEvent(order models.Order, eventType string) {
	if publisher == nil {
		return
	}

	event := models.OrderEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Type:       eventType,
		Status:     order.Status,
		Total:      order.TotalAmount,
		Occurred:   time.Now(),
	}

	priority := 5 // 默认优先级
	if eventType == "created" && order.TotalAmount > 1000 {
		priority = 9
	}
	if order.Status == models.StatusCancelled {
		priority = 8
	}

	if err := publisher.PublishOrderEvent(event, priority); err != nil {
		log.Printf("Failed to publish order %s event: %v", eventType, err)
	}

	if eventType == "created" {
		// 15分钟后检查支付状态
		checkEvent := event
		checkEvent.Type = "payment_check"
		if err := publisher.PublishDelayedEvent(checkEvent, 15*time.Minute); err != nil {
			log.Printf("Failed to publish delayed payment check event: %v", err)
		}
	}
}
