package controllers

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"

	"user-order-service/middlewares"
	"user-order-service/models"
	"user-order-service/utils"
)

func ListUsers(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "list", status)
	}()

	handleBlocking(c, dispatcher.Default(), "list-users", func() (*response, error) {
		log.Printf("Fetching all users")
		// 模拟数据库操作
		time.Sleep(100 * time.Millisecond)

		return ok(userStore.List()), nil
	})
}

func GetUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "get", status)
	}()
	userID := c.Param("id")

	handleBlocking(c, dispatcher.Default(), "get-user", func() (*response, error) {
		log.Printf("Fetching user with ID: %s", userID)
		// 模拟数据库查询
		time.Sleep(50 * time.Millisecond)

		user, found := userStore.Get(userID)
		if !found {
			return nil, errNotFound("User not found")
		}
		return ok(user), nil
	})
}

func CreateUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "create", status)
	}()

	var newUser models.User
	if err := c.ShouldBindJSON(&newUser); err != nil || newUser.Name == "" || newUser.Email == "" {
		sendError(c, 400, "Invalid user data")
		return
	}

	handleBlocking(c, dispatcher.Default(), "create-user", func() (*response, error) {
		log.Printf("Creating new user: %s", newUser.Name)
		// 模拟数据库写入
		time.Sleep(200 * time.Millisecond)

		newUser.ID = utils.NextID("")
		userStore.Put(newUser.ID, newUser)

		return created(newUser), nil
	})
}

func UpdateUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "update", status)
	}()
	userID := c.Param("id")

	var updatedUser models.User
	if err := c.ShouldBindJSON(&updatedUser); err != nil {
		sendError(c, 400, "Invalid user data")
		return
	}

	handleBlocking(c, dispatcher.Default(), "update-user", func() (*response, error) {
		log.Printf("Updating user with ID: %s", userID)
		// 模拟数据库更新
		time.Sleep(150 * time.Millisecond)

		if _, found := userStore.Get(userID); !found {
			return nil, errNotFound("User not found")
		}

		// 整体替换，保留路径中的ID
		updatedUser.ID = userID
		userStore.Put(userID, updatedUser)

		return ok(updatedUser), nil
	})
}

func DeleteUser(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "delete", status)
	}()
	userID := c.Param("id")

	handleBlocking(c, dispatcher.Default(), "delete-user", func() (*response, error) {
		log.Printf("Deleting user with ID: %s", userID)
		// 模拟数据库删除
		time.Sleep(100 * time.Millisecond)

		if _, found := userStore.Remove(userID); !found {
			return nil, errNotFound("User not found")
		}
		return ok(gin.H{"message": "User deleted successfully"}), nil
	})
}

// HeavyUserOperation runs a CPU-bound computation that must never execute on
// the request goroutine; it goes through the dedicated pool.
func HeavyUserOperation(c *gin.Context) {
	defer func() {
		status := c.Writer.Status() >= 200 && c.Writer.Status() < 300
		middlewares.RecordEntityOperation("user", "heavy_operation", status)
	}()
	userID := c.Param("id")

	handleBlocking(c, dedicatedPool, "heavy-user-operation", func() (*response, error) {
		log.Printf("Performing heavy operation for user: %s", userID)

		user, found := userStore.Get(userID)
		if !found {
			return nil, errNotFound("User not found")
		}

		result := performComplexCalculation()

		return ok(gin.H{
			"userId":            userID,
			"userName":          user.Name,
			"calculationResult": result,
			"processingTime":    "Heavy operation completed",
		}), nil
	})
}

func performComplexCalculation() int {
	// 模拟CPU密集型计算
	result := 0
	for i := 0; i < 1000000; i++ {
		result += rand.Intn(1000)
	}
	return result % 10000
}
