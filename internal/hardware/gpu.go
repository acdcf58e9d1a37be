package hardware

import (
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// GPU is a scoped NVML handle for the first device. It is acquired with
// OpenGPU and must be released with Close. Absence of the driver or library
// is reported as an error by OpenGPU; callers treat that as a degraded mode
// (CPU-only monitoring), never as a failure.
type GPU struct {
	device nvml.Device
}

// Info holds the one-time device description logged at startup.
type Info struct {
	Name          string
	DriverVersion string
	DeviceCount   int
	MemoryTotalMB float64
	MemoryUsedMB  float64
	MemoryFreeMB  float64
}

// OpenGPU initializes NVML and acquires a handle to the first device.
func OpenGPU() (*GPU, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || count == 0 {
		nvml.Shutdown()
		return nil, fmt.Errorf("no NVIDIA device detected")
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		nvml.Shutdown()
		return nil, fmt.Errorf("device handle: %s", nvml.ErrorString(ret))
	}

	return &GPU{device: device}, nil
}

// Close shuts NVML down. Safe to call on a nil receiver.
func (g *GPU) Close() {
	if g == nil {
		return
	}
	nvml.Shutdown()
}

// Name returns the device name, or "Unknown" when the query fails.
func (g *GPU) Name() string {
	name, ret := g.device.GetName()
	if ret != nvml.SUCCESS {
		return "Unknown"
	}
	return name
}

// Utilization returns the instantaneous GPU utilization percentage.
func (g *GPU) Utilization() (float64, error) {
	util, ret := g.device.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("utilization: %s", nvml.ErrorString(ret))
	}
	return float64(util.Gpu), nil
}

// PowerWatts returns the current power draw in watts.
func (g *GPU) PowerWatts() (float64, error) {
	mw, ret := g.device.GetPowerUsage()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("power usage: %s", nvml.ErrorString(ret))
	}
	return float64(mw) / 1000, nil
}

// TemperatureC returns the current GPU core temperature in Celsius.
func (g *GPU) TemperatureC() (float64, error) {
	temp, ret := g.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("temperature: %s", nvml.ErrorString(ret))
	}
	return float64(temp), nil
}

// Info collects the device description. Individual query failures leave the
// corresponding fields zeroed.
func (g *GPU) Info() Info {
	info := Info{Name: g.Name()}

	if count, ret := nvml.DeviceGetCount(); ret == nvml.SUCCESS {
		info.DeviceCount = count
	}
	if version, ret := nvml.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		info.DriverVersion = version
	}
	if mem, ret := g.device.GetMemoryInfo(); ret == nvml.SUCCESS {
		info.MemoryTotalMB = float64(mem.Total) / (1024 * 1024)
		info.MemoryUsedMB = float64(mem.Used) / (1024 * 1024)
		info.MemoryFreeMB = float64(mem.Free) / (1024 * 1024)
	}

	return info
}
