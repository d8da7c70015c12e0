package main

import (
	"log"
	"os"

	"dsa_sheet/internal/client"
	"dsa_sheet/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	store, err := client.DefaultSessionStore()
	if err != nil {
		log.Fatalf("Could not resolve session path: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		log.Printf("Ignoring unreadable session: %v", err)
	}

	app := tui.NewApp(client.New(apiURL), store, session)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("Dashboard exited with error: %v", err)
	}
}
