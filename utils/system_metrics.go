package utils

import (
	"log"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// GetCPUUsage returns the current CPU usage as a percentage
func GetCPUUsage() float64 {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		log.Printf("Error getting CPU usage: %v", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// GetMemoryUsage returns the current memory usage as a percentage
func GetMemoryUsage() float64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("Error getting memory usage: %v", err)
		return 0
	}
	return vm.UsedPercent
}
