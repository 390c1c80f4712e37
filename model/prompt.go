package model

import (
	"strings"

	"asistente/config"
	"asistente/storage"
)

// Base instructions for the intake assistant. Inventory and any
// user-configured prompt are appended at build time.
const promptPreamble = `Eres un asistente de atención a clientes. Atiendes en español, de forma breve y cordial.

Cuando el cliente mencione un lugar, una dirección o pida una ruta, usa las herramientas de mapa disponibles para mostrarlo.

Cuando el cliente confirme que desea un servicio, y ya tengas su nombre, teléfono y dirección, incluye en tu respuesta un bloque con este formato exacto:

<service_confirmation>
Name: [nombre del cliente]
Phone: [teléfono]
Details: [detalle del servicio]
Address: [dirección]
</service_confirmation>

El bloque es para uso interno y el cliente no lo verá. No inventes datos: pide los que falten antes de emitir el bloque.`

// BuildSystemPrompt assembles the turn's system instruction from the
// fixed preamble, the current inventory listing and the configured
// prompt suffix.
func (m *Model) BuildSystemPrompt() string {
	var b strings.Builder
	b.WriteString(promptPreamble)

	b.WriteString("\n\nProductos y servicios disponibles:\n")
	if m.Inventory != nil {
		items, err := m.Inventory.List()
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("inventory listing failed: %v", err)
			}
			b.WriteString(storage.EmptyInventoryNotice)
		} else {
			b.WriteString(storage.PromptListing(items))
		}
	} else {
		b.WriteString(storage.EmptyInventoryNotice)
	}

	if m.Config != nil && m.Config.DefaultSystemPrompt != "" {
		b.WriteString("\n\n")
		b.WriteString(m.Config.DefaultSystemPrompt)
	}
	return b.String()
}
