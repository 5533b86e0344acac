package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	RSS      int `json:"rss"`
	HeapUsed int `json:"heapUsed"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

var startTime = time.Now()

// CollectHealth gathers health data from the database, Redis, and the file store.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger, storageURL string) CollectResult {
	result := CollectResult{
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if storageURL != "" {
		storagePing := httpPing(storageURL, 3*time.Second)
		storageStatus := "unreachable"
		if storagePing != nil {
			storageStatus = "reachable"
		}
		result.Dependencies["storage"] = DepStatus{Status: storageStatus, PingMs: storagePing}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	result.Runtime = RuntimeInfo{
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Memory:        MemoryInfo{RSS: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if dbStatus == "connected" && redisStatus == "connected" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func httpPing(url string, timeout time.Duration) *int64 {
	client := &http.Client{Timeout: timeout}
	start := time.Now()
	resp, err := client.Get(url)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	ms := time.Since(start).Milliseconds()
	return &ms
}
