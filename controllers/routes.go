package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes binds every handler to its method+path pair.
func RegisterRoutes(r *gin.Engine) {
	// 诊断端点
	r.GET("/health", HealthCheck)
	r.GET("/thread-info", ThreadInfo)
	r.GET("/verticle-info", VerticleInfo)
	r.GET("/thread-stats", ThreadStats)

	api := r.Group("/api")
	{
		api.GET("/users", ListUsers)
		api.GET("/users/:id", GetUser)
		api.POST("/users", CreateUser)
		api.PUT("/users/:id", UpdateUser)
		api.DELETE("/users/:id", DeleteUser)
		api.GET("/users/:id/heavy-operation", HeavyUserOperation)

		api.GET("/orders", ListOrders)
		api.GET("/orders/:id", GetOrder)
		api.POST("/orders", CreateOrder)
		api.PUT("/orders/:id", UpdateOrder)
		api.DELETE("/orders/:id", DeleteOrder)
		api.PUT("/orders/:id/status", UpdateOrderStatus)
		api.GET("/orders/:id/calculate-total", CalculateOrderTotal)
	}
}
