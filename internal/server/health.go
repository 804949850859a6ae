package server

import (
	"fmt"
	"net/http"
	"runtime"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// healthHandler reports process and host health. There is no database in
// this service, so the stats are host-level: memory, CPU, uptime and
// goroutine count, plus whether the service is running against the real
// model API or the offline generator.
func (s *Server) healthHandler(c echo.Context) error {
	stats := map[string]string{
		"status":     "up",
		"goroutines": strconv.Itoa(runtime.NumGoroutine()),
		"mock_mode":  strconv.FormatBool(s.cfg.GeminiAPIKey == ""),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		stats["mem_used_percent"] = fmt.Sprintf("%.1f", vm.UsedPercent)
		if vm.UsedPercent > 90 {
			stats["message"] = "Host memory is nearly exhausted."
		}
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats["cpu_percent"] = fmt.Sprintf("%.1f", percents[0])
	}
	if uptime, err := host.Uptime(); err == nil {
		stats["host_uptime_s"] = strconv.FormatUint(uptime, 10)
	}

	return c.JSON(http.StatusOK, stats)
}
