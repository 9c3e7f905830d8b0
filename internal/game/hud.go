package game

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type hudStats struct {
	FPS       float64
	TPS       float64
	Nodes     int
	Edges     int
	Threshold float64
	Uptime    time.Duration
	Track     string
	Level     float64
}

func (s hudStats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.0f  TPS %.0f  up %s\n", s.FPS, s.TPS, formatDuration(s.Uptime))
	fmt.Fprintf(&b, "nodes %d  edges %d  reach %.0fpx\n", s.Nodes, s.Edges, s.Threshold)
	if s.Track != "" {
		fmt.Fprintf(&b, "%s  level %s\n", filepath.Base(s.Track), levelBar(s.Level, 10))
	}
	b.WriteString("Esc/Q to quit")
	return b.String()
}

func levelBar(level float64, width int) string {
	filled := int(clamp01(level)*float64(width) + 0.5)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
