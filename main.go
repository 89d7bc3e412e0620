package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"user-order-service/config"
	"user-order-service/consumers"
	"user-order-service/controllers"
	"user-order-service/events"
	"user-order-service/middlewares"
	"user-order-service/models"
	"user-order-service/store"
	"user-order-service/workerpool"
)

func main() {
	// 加载配置
	cfg := config.LoadConfig()

	instanceID := uuid.NewString()
	log.Printf("Starting user-order-service instance %s", instanceID)

	// 创建工作池
	dispatcher := workerpool.NewDispatcher(cfg.WorkerPoolName, cfg.WorkerPoolSize, cfg.WorkerMaxExecution)
	dedicatedPool := dispatcher.CreateSharedPool(
		cfg.DedicatedPoolName+"-"+instanceID,
		cfg.DedicatedPoolSize,
		cfg.WorkerMaxExecution,
	)
	defer dispatcher.Close()

	// 初始化内存存储并写入示例数据
	userStore := store.New[models.User]()
	orderStore := store.New[models.Order]()
	store.SeedUsers(userStore)
	store.SeedOrders(orderStore)

	// 初始化事件发布（可选）
	var publisher *events.Publisher
	if cfg.EventsURL != "" {
		var err error
		publisher, err = events.NewPublisher(cfg)
		if err != nil {
			log.Printf("Event publisher disabled: %v", err)
		} else {
			defer publisher.Close()
			if err := publisher.SetupQueues(); err != nil {
				log.Fatalf("Failed to setup event queues: %v", err)
			}
			// 启动消息消费者
			go consumers.StartOrderConsumer(publisher.Channel, cfg, orderStore)
		}
	}

	// 注入控制器依赖
	controllers.SetStores(userStore, orderStore)
	controllers.SetDispatcher(dispatcher, dedicatedPool)
	controllers.SetPublisher(publisher)
	controllers.SetInstance(instanceID)

	// 创建Gin路由
	r := gin.Default()

	// 全局中间件
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.PrometheusMiddleware())

	// 暴露Prometheus指标端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 诊断与业务路由
	controllers.RegisterRoutes(r)

	// 启动服务器
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down instance %s...", instanceID)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
