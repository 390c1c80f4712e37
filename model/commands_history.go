package model

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FetchHistory lists persisted service requests, newest first.
func (m *Model) FetchHistory() tea.Cmd {
	if m.History == nil {
		return nil
	}
	store := m.History
	return func() tea.Msg {
		requests, err := store.List()
		return HistoryListMsg{Requests: requests, Err: err}
	}
}

// AdvanceRequest moves a service request to its next status. Price is
// only accepted on the final step; the storage layer enforces that.
func (m *Model) AdvanceRequest(id string, price *float64) tea.Cmd {
	if m.History == nil {
		return nil
	}
	store := m.History
	return func() tea.Msg {
		if _, err := store.Advance(id, price); err != nil {
			return HistoryUpdatedMsg{Err: err}
		}
		return HistoryUpdatedMsg{}
	}
}

// DeleteRequest removes a service request.
func (m *Model) DeleteRequest(id string) tea.Cmd {
	if m.History == nil {
		return nil
	}
	store := m.History
	return func() tea.Msg {
		return HistoryUpdatedMsg{Err: store.Delete(id)}
	}
}

// FetchInventory lists the product and service catalog.
func (m *Model) FetchInventory() tea.Cmd {
	if m.Inventory == nil {
		return nil
	}
	store := m.Inventory
	return func() tea.Msg {
		items, err := store.List()
		return InventoryListMsg{Items: items, Err: err}
	}
}
