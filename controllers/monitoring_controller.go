package controllers

import (
	"bytes"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

var serverInstanceID string

// SetInstance records the per-process instance identifier reported by the
// diagnostics endpoints.
func SetInstance(id string) {
	serverInstanceID = id
}

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "UP",
		"timestamp": time.Now().UnixMilli(),
	})
}

// ThreadInfo identifies the goroutine currently handling the request.
func ThreadInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"handlerGoroutine": currentGoroutine(),
		"timestamp":        time.Now().UnixMilli(),
	})
}

// VerticleInfo reports this server instance plus its dedicated worker pool.
func VerticleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"instanceId":       serverInstanceID,
		"workerPool":       dedicatedPool.Name(),
		"handlerGoroutine": currentGoroutine(),
		"timestamp":        time.Now().UnixMilli(),
	})
}

// ThreadStats aggregates goroutine counts, worker pool state and runtime
// memory figures. Read-only, side-effect-free.
func ThreadStats(c *gin.Context) {
	poolStats := dispatcher.Stats()

	var workerCount int64
	for _, stats := range poolStats {
		workerCount += int64(stats.Size)
	}

	total := int64(runtime.NumGoroutine())
	eventLoop := int64(runtime.GOMAXPROCS(0))
	other := total - workerCount - eventLoop
	if other < 0 {
		other = 0
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"goroutines": gin.H{
			"total":            total,
			"eventLoopThreads": eventLoop,
			"workerThreads":    workerCount,
			"otherThreads":     other,
		},
		"workerPools": poolStats,
		"runtime": gin.H{
			"availableProcessors": runtime.NumCPU(),
			"maxMemory":           mem.Sys,
			"totalMemory":         mem.HeapSys,
			"freeMemory":          mem.HeapSys - mem.HeapAlloc,
		},
		"currentInstance": gin.H{
			"instanceId":       serverInstanceID,
			"handlerGoroutine": currentGoroutine(),
		},
		"timestamp": time.Now().UnixMilli(),
	})
}

// currentGoroutine extracts this goroutine's id from the stack header
// ("goroutine 123 [running]"). Goroutines have no names, so the id is the
// closest analogue to a thread name for the demo endpoints.
func currentGoroutine() string {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	fields := bytes.Fields(buf)
	if len(fields) < 2 {
		return "goroutine-unknown"
	}
	if _, err := strconv.Atoi(string(fields[1])); err != nil {
		return "goroutine-unknown"
	}
	return "goroutine-" + string(fields[1])
}
