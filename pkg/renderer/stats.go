package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Pixels in the image
	ProcessedPixels int           // Pixels rendered so far
	PrimaryRays     int           // Camera rays traced so far
	Elapsed         time.Duration // Wall time since the render started
}

// Progress returns the completed fraction in [0,1]
func (s RenderStats) Progress() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.ProcessedPixels) / float64(s.TotalPixels)
}

// PixelsPerSecond returns the average render speed
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.ProcessedPixels) / s.Elapsed.Seconds()
}

// RaysPerSecond returns the average primary ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Elapsed.Seconds()
}

// ETA estimates the time left at the current speed. It is zero when nothing
// has been rendered yet or the render is complete.
func (s RenderStats) ETA() time.Duration {
	pps := s.PixelsPerSecond()
	if pps == 0 || s.ProcessedPixels >= s.TotalPixels {
		return 0
	}
	remaining := float64(s.TotalPixels - s.ProcessedPixels)
	return time.Duration(remaining / pps * float64(time.Second))
}
