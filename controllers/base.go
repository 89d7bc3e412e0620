package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-order-service/events"
	"user-order-service/models"
	"user-order-service/store"
	"user-order-service/workerpool"
)

var (
	userStore  *store.Store[models.User]
	orderStore *store.Store[models.Order]

	dispatcher    *workerpool.Dispatcher
	dedicatedPool *workerpool.Pool

	publisher *events.Publisher
)

func SetStores(users *store.Store[models.User], orders *store.Store[models.Order]) {
	userStore = users
	orderStore = orders
}

// SetDispatcher wires the default dispatcher plus the dedicated pool used by
// the computation-heavy endpoints.
func SetDispatcher(d *workerpool.Dispatcher, dedicated *workerpool.Pool) {
	dispatcher = d
	dedicatedPool = dedicated
}

func SetPublisher(p *events.Publisher) {
	publisher = p
}

// apiError carries a status code alongside the message so task code can fail
// with NotFound/InvalidInput instead of a generic 500.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func errNotFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, message: message}
}

func errInvalidInput(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message}
}

// response is what a successful task hands back for the request goroutine to
// write.
type response struct {
	status int
	body   any
}

func ok(body any) *response {
	return &response{status: http.StatusOK, body: body}
}

func created(body any) *response {
	return &response{status: http.StatusCreated, body: body}
}

func sendError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error":      true,
		"message":    message,
		"statusCode": status,
	})
}

// handleBlocking submits fn to the pool and awaits its future on the request
// goroutine, which then writes the single response for this request.
// Uncaught task failures become a generic 500; raw errors never leak to the
// client.
func handleBlocking(c *gin.Context, pool *workerpool.Pool, name string, fn func() (*response, error)) {
	future := pool.Submit(name, func() (any, error) {
		return fn()
	})

	value, err := future.Wait()
	if err != nil {
		var apiErr *apiError
		if errors.As(err, &apiErr) {
			sendError(c, apiErr.status, apiErr.message)
			return
		}
		log.Printf("Worker task %s failed: %v", name, err)
		sendError(c, http.StatusInternalServerError, "Operation failed")
		return
	}

	resp := value.(*response)
	c.JSON(resp.status, resp.body)
}
