package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for Sonolog.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Night-sky gradient (indigo to violet)
	s1 := termenv.String("                          _             ").Foreground(p.Color("#6366f1"))
	s2 := termenv.String("  ___  ___  _ __   ___ | | ___   __ _ ").Foreground(p.Color("#818cf8"))
	s3 := termenv.String(" / __|/ _ \\| '_ \\ / _ \\| |/ _ \\ / _` |").Foreground(p.Color("#a78bfa"))
	s4 := termenv.String(" \\__ \\ (_) | | | | (_) | | (_) | (_| |").Foreground(p.Color("#c084fc"))
	s5 := termenv.String(" |___/\\___/|_| |_|\\___/|_|\\___/ \\__, |").Foreground(p.Color("#d8b4fe"))
	s6 := termenv.String("                                |___/ ").Foreground(p.Color("#e9d5ff"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
