package ui

import (
	"context"
	"fmt"
	"strata/internal/ui/components"
	"strata/pkg/storage"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BrowserModel represents the interactive bucket browser
type BrowserModel struct {
	Client        *storage.Client
	Bucket        string
	ObjectList    components.ObjectListModel
	Spinner       spinner.Model
	IsLoading     bool
	StatusMessage string
	ErrorMessage  string
	Width         int
	Height        int
	Ready         bool
}

type objectsLoadedMsg []storage.Object

type errorMsg string

// NewBrowserModel creates a new browser model for a bucket
func NewBrowserModel(client *storage.Client, bucket string) BrowserModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return BrowserModel{
		Client:        client,
		Bucket:        bucket,
		Spinner:       s,
		IsLoading:     true,
		StatusMessage: "Loading objects...",
	}
}

// loadObjects fetches the bucket contents from the API
func loadObjects(client *storage.Client, bucket string) tea.Cmd {
	return func() tea.Msg {
		objects, err := client.ListObjects(context.Background(), bucket, "", nil)
		if err != nil {
			return errorMsg(err.Error())
		}
		return objectsLoadedMsg(objects)
	}
}

// Init initializes the model
func (m BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, loadObjects(m.Client, m.Bucket))
}

// Update handles UI updates
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.IsLoading = true
			m.StatusMessage = "Refreshing objects..."
			return m, loadObjects(m.Client, m.Bucket)
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		if !m.Ready {
			// First time initializing
			m.ObjectList = components.NewObjectListModel(m.Bucket, msg.Width, msg.Height-4)
			m.ObjectList.SetObjects(nil)
			m.Ready = true
		} else {
			m.ObjectList.List.SetSize(msg.Width, msg.Height-4)
		}

		return m, nil

	case spinner.TickMsg:
		var spinnerCmd tea.Cmd
		m.Spinner, spinnerCmd = m.Spinner.Update(msg)
		cmds = append(cmds, spinnerCmd)

	case objectsLoadedMsg:
		m.IsLoading = false
		m.ErrorMessage = ""
		m.StatusMessage = fmt.Sprintf("Loaded %d objects", len(msg))
		if m.Ready {
			m.ObjectList.SetObjects(msg)
		}
		return m, nil

	case errorMsg:
		m.IsLoading = false
		m.ErrorMessage = string(msg)
		m.StatusMessage = "Error"
		return m, nil
	}

	if m.Ready {
		var listCmd tea.Cmd
		m.ObjectList, listCmd = m.ObjectList.Update(msg)
		cmds = append(cmds, listCmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m BrowserModel) View() string {
	if !m.Ready {
		return "Initializing..."
	}

	var status string
	if m.IsLoading {
		status = fmt.Sprintf("%s %s", m.Spinner.View(), m.StatusMessage)
	} else if m.ErrorMessage != "" {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(m.ErrorMessage)
	} else {
		status = m.StatusMessage
	}

	help := lipgloss.NewStyle().Faint(true).Render("r: refresh - q: quit")

	return fmt.Sprintf("%s\n%s\n%s", m.ObjectList.View(), status, help)
}
