package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	celebrationSteps = 5
	celebrationTick  = 60 * time.Millisecond
)

// printCelebration fills a short bar and settles on msg. Terminals only.
func printCelebration(w io.Writer, msg string) {
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	for step := 1; step <= celebrationSteps; step++ {
		filled := strings.Repeat("▰", step) + strings.Repeat("▱", celebrationSteps-step)
		fmt.Fprintf(w, "\r\033[K%s", bar.Render(filled))
		time.Sleep(celebrationTick)
	}
	fmt.Fprintf(w, "\r\033[K%s\n", done.Render("🎓 "+msg))
}
