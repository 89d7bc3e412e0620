package events

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"user-order-service/config"
	"user-order-service/models"
)

type Publisher struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Cfg     *config.Config
}

func NewPublisher(cfg *config.Config) (*Publisher, error) {
	conn, err := amqp.Dial(cfg.EventsURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		err := conn.Close()
		if err != nil {
			return nil, err
		}
		return nil, err
	}

	return &Publisher{
		Conn:    conn,
		Channel: ch,
		Cfg:     cfg,
	}, nil
}

func (p *Publisher) SetupQueues() error {
	// 声明死信交换机和队列
	if err := p.Channel.ExchangeDeclare(
		p.Cfg.DeadLetterQueue+"_exchange",
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	_, err := p.Channel.QueueDeclare(
		p.Cfg.DeadLetterQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-queue-type": "classic", // 明确指定队列类型
		},
	)
	if err != nil {
		return err
	}

	if err := p.Channel.QueueBind(
		p.Cfg.DeadLetterQueue,
		"",
		p.Cfg.DeadLetterQueue+"_exchange",
		false,
		nil,
	); err != nil {
		return err
	}

	// 声明订单交换机
	if err := p.Channel.ExchangeDeclare(
		p.Cfg.OrderExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	// 声明延迟交换机（需要RabbitMQ安装延迟插件）
	if err := p.Channel.ExchangeDeclare(
		p.Cfg.DelayExchange,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "direct"},
	); err != nil {
		log.Printf("Warning: Delayed exchange not supported: %v", err)
	}

	// 声明主订单队列（带优先级和死信）
	_, err = p.Channel.QueueDeclare(
		p.Cfg.OrderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-max-priority":            p.Cfg.MaxPriority, // 设置最大优先级
			"x-dead-letter-exchange":    p.Cfg.DeadLetterQueue + "_exchange",
			"x-dead-letter-routing-key": p.Cfg.DeadLetterQueue,
		},
	)
	if err != nil {
		return err
	}

	// 绑定主队列到订单交换机
	if err := p.Channel.QueueBind(
		p.Cfg.OrderQueue,
		"",
		p.Cfg.OrderExchange,
		false,
		nil,
	); err != nil {
		return err
	}

	return nil
}

func (p *Publisher) PublishOrderEvent(event models.OrderEvent, priority int) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
		Priority:     uint8(priority),
	}

	return p.Channel.Publish(
		p.Cfg.OrderExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (p *Publisher) PublishDelayedEvent(event models.OrderEvent, delay time.Duration) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		ContentType:  "application/json",
		Body:         body,
		Headers: amqp.Table{
			"x-delay": delay.Milliseconds(), // 延迟时间（毫秒）
		},
	}

	return p.Channel.Publish(
		p.Cfg.DelayExchange,
		"",
		false, // mandatory
		false, // immediate
		msg,
	)
}

func (p *Publisher) Close() {
	if p.Channel != nil {
		err := p.Channel.Close()
		if err != nil {
			return
		}
	}
	if p.Conn != nil {
		err := p.Conn.Close()
		if err != nil {
			return
		}
	}
}
