package consumers

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"user-order-service/config"
	"user-order-service/models"
	"user-order-service/store"
)

func StartOrderConsumer(ch *amqp.Channel, cfg *config.Config, orders *store.Store[models.Order]) {
	// 消费主订单队列
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"user-order-service", // consumers tag
		false,                // auto-ack
		false,                // exclusive
		false,                // no-local
		false,                // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register consumers: %v", err)
		return
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, orders)
		}
	}()

	// 消费死信队列
	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"user-order-service-dlq", // consumers tag
		false,                    // auto-ack
		false,                    // exclusive
		false,                    // no-local
		false,                    // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumers: %v", err)
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processOrderMessage(msg amqp.Delivery, orders *store.Store[models.Order]) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in message processing: %v", r)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid message format: %s", msg.Body)
		err := msg.Nack(false, false)
		if err != nil {
			return
		} // 拒绝消息，不重新入队
		return
	}

	log.Printf("Processing order event: ID=%s, Type=%s", event.OrderID, event.Type)

	// 根据事件类型处理
	switch event.Type {
	case "created":
		handleOrderCreated(event)
	case "status_updated":
		handleStatusUpdated(event, orders)
	case "payment_check":
		handlePaymentCheck(event, orders)
	default:
		log.Printf("Unknown event type: %s", event.Type)
	}

	// 处理成功后确认消息
	err := msg.Ack(false)
	if err != nil {
		return
	}
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	// 实际处理：记录、通知管理员等
	err := msg.Ack(false)
	if err != nil {
		return
	}
}

func handleOrderCreated(event models.OrderEvent) {
	// 实际业务逻辑：通知其他服务、更新缓存等
	log.Printf("Handling order created: %s", event.OrderID)
}

func handleStatusUpdated(event models.OrderEvent, orders *store.Store[models.Order]) {
	order, found := orders.Get(event.OrderID)
	if !found {
		log.Printf("Order %s no longer exists, skipping status event", event.OrderID)
		return
	}

	// 根据状态处理
	switch order.Status {
	case models.StatusShipped:
		// 发送发货通知
	case models.StatusCancelled:
		// 处理取消逻辑
	}
	log.Printf("Handling status update for order %s: %s", order.ID, order.Status)
}

func handlePaymentCheck(event models.OrderEvent, orders *store.Store[models.Order]) {
	order, found := orders.Get(event.OrderID)
	if !found {
		return
	}

	// 如果订单仍未支付，自动取消
	if order.Status == models.StatusPending {
		order.Status = models.StatusCancelled
		order.UpdatedAt = time.Now()
		orders.Put(order.ID, order)
		log.Printf("Auto-cancelled order %s due to non-payment", order.ID)
	}
}
