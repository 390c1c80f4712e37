package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"asistente/config"
	"asistente/mapview"
	"asistente/mcp"
	"asistente/model"
	"asistente/provider"
	"asistente/storage"
	"asistente/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fatalModal("Error de almacenamiento", fmt.Sprintf("No se pudo inicializar el almacenamiento de sesiones:\n%v", err))
	}

	historyStorage, err := storage.NewHistoryStorage(cfg.DataDir())
	if err != nil {
		fatalModal("Error de almacenamiento", fmt.Sprintf("No se pudo abrir el historial de servicios:\n%v", err))
	}
	defer historyStorage.Close()

	inventoryStorage, err := storage.NewInventoryStorage(cfg.DataDir())
	if err != nil {
		fatalModal("Error de almacenamiento", fmt.Sprintf("No se pudo abrir el inventario:\n%v", err))
	}
	defer inventoryStorage.Close()

	if err := inventoryStorage.SeedDefaults(); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("inventory seed failed: %v", err)
	}

	// Geocoding falls back to the offline controller when no key is
	// configured, so the assistant still works without Google Maps.
	var controller mapview.Controller
	if cfg.MapsAPIKey != "" {
		gm, err := mapview.NewGoogleMaps(cfg.MapsAPIKey)
		if err != nil {
			fatalModal("Error de mapas", fmt.Sprintf("No se pudo crear el cliente de Google Maps:\n%v", err))
		}
		controller = gm
	} else {
		if config.DebugLog != nil {
			config.DebugLog.Printf("no maps api key, using offline map controller")
		}
		controller = mapview.NewStatic()
	}

	ctx := context.Background()

	mapServer := mcp.NewMapServer(controller)
	bridge, err := mcp.NewBridge(ctx, mapServer.Server())
	if err != nil {
		fatalModal("Error interno", fmt.Sprintf("No se pudo conectar el puente de herramientas:\n%v", err))
	}
	defer bridge.Close()

	gemini, err := provider.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		fatalModal("Error de configuración", fmt.Sprintf(
			"%v\n\nConfigura gemini.api_key en config.toml\no exporta ASISTENTE_GEMINI_API_KEY.", err))
	}

	dataModel := model.NewModel(cfg)
	dataModel.Provider = gemini
	dataModel.Bridge = bridge
	dataModel.Map = controller
	dataModel.Sessions = sessionStorage
	dataModel.History = historyStorage
	dataModel.Inventory = inventoryStorage
	dataModel.Search = storage.NewSearchIndex(sessionStorage)

	// Resume where the user left off
	if lastID, err := sessionStorage.LoadCurrentSessionID(); err == nil {
		if last, err := sessionStorage.Load(lastID); err == nil {
			dataModel.ApplySession(last)
		}
	}
	if dataModel.CurrentSession == nil {
		dataModel.NewSession()
	}

	p := tea.NewProgram(
		ui.NewAppView(dataModel),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running asistente: %v\n", err)
		os.Exit(1)
	}
}

// fatalModal shows a startup error in a minimal full-screen modal and
// exits once acknowledged.
func fatalModal(title, message string) {
	p := tea.NewProgram(
		ui.NewErrorModal(title, message),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
