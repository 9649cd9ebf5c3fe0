package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// HealthSample is one periodic snapshot of storage and process health
// shown on the admin dashboard.
type HealthSample struct {
	CapturedAt        time.Time      `json:"capturedAt"`
	DiskTotalBytes    int64          `json:"diskTotalBytes"`
	DiskUsedBytes     int64          `json:"diskUsedBytes"`
	ProcessRSSBytes   int64          `json:"processRssBytes"`
	ProcessCpuLoad    float64        `json:"processCpuLoad"`
	SystemCpuLoad     float64        `json:"systemCpuLoad"`
	SystemMemoryTotal int64          `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64          `json:"systemMemoryUsedBytes"`
	RecordCounts      map[string]int `json:"recordCounts"`
}

// RecordCounter reports how many records each collection holds.
type RecordCounter interface {
	RecordCounts() map[string]int
}

// CaptureHealth samples disk usage for the data directory plus process
// and system load. Individual probe failures degrade to zeros rather
// than failing the sample.
func CaptureHealth(dataDir string, counter RecordCounter) HealthSample {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(dataDir)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}

	sample := HealthSample{CapturedAt: time.Now().UTC()}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if proc != nil {
		if rss, _ := proc.MemoryInfo(); rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		sample.ProcessCpuLoad = cpuPerc / 100.0
	}
	if sysCPU, _ := cpu.Percent(0, false); len(sysCPU) > 0 {
		sample.SystemCpuLoad = sysCPU[0] / 100.0
	}
	if counter != nil {
		sample.RecordCounts = counter.RecordCounts()
	}
	return sample
}

// Sampler captures health on an interval and keeps a bounded in-memory
// history for the dashboard chart.
type Sampler struct {
	dataDir  string
	counter  RecordCounter
	interval time.Duration
	hub      *UpdatesHub

	mu      sync.Mutex
	history []HealthSample
	cap     int
}

func NewSampler(dataDir string, counter RecordCounter, interval time.Duration, hub *UpdatesHub) *Sampler {
	return &Sampler{
		dataDir:  dataDir,
		counter:  counter,
		interval: interval,
		hub:      hub,
		cap:      500,
	}
}

// Run samples until ctx is canceled. The first sample is taken
// immediately.
func (s *Sampler) Run(ctx context.Context) {
	s.capture()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.capture()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Sampler) capture() {
	sample := CaptureHealth(s.dataDir, s.counter)
	s.mu.Lock()
	s.history = append(s.history, sample)
	if len(s.history) > s.cap {
		s.history = s.history[len(s.history)-s.cap:]
	}
	s.mu.Unlock()
	if s.hub != nil {
		s.hub.Broadcast(UpdateEvent{Kind: "health", Health: &sample})
	}
}

// History returns up to limit most recent samples, oldest first.
func (s *Sampler) History(limit int) []HealthSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || limit > len(s.history) {
		limit = len(s.history)
	}
	out := make([]HealthSample, limit)
	copy(out, s.history[len(s.history)-limit:])
	return out
}

// UpdateEvent is one message pushed to connected admin views: either a
// collection change notification or a health sample.
type UpdateEvent struct {
	Kind      string        `json:"kind"`
	Topic     string        `json:"topic,omitempty"`
	Timestamp time.Time     `json:"timestamp,omitempty"`
	Health    *HealthSample `json:"health,omitempty"`
}

// UpdatesHub fans UpdateEvents out to websocket clients. Writes happen
// on the Run goroutine only; Add and Remove are safe from handler
// goroutines.
type UpdatesHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan UpdateEvent
}

func NewUpdatesHub() *UpdatesHub {
	return &UpdatesHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan UpdateEvent, 16),
	}
}

func (h *UpdatesHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.WriteJSON(event)
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// Broadcast queues an event, dropping it when the hub is backed up.
func (h *UpdatesHub) Broadcast(event UpdateEvent) {
	select {
	case h.ch <- event:
	default:
	}
}

func (h *UpdatesHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *UpdatesHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}
