package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lipu/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	defaultURL := "http://localhost:8080"
	if v := os.Getenv("LIPU_URL"); v != "" {
		defaultURL = v
	}
	serverURL := flag.String("url", defaultURL, "lipu server URL")
	flag.Parse()

	program := tea.NewProgram(tui.NewModel(*serverURL), tea.WithAltScreen())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
