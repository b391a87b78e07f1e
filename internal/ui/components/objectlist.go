package components

import (
	"fmt"
	"strata/internal/util"
	"strata/pkg/storage"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ObjectItem represents an object item in the list
type ObjectItem struct {
	Object storage.Object
}

// FilterValue returns the filter value for the object item
func (i ObjectItem) FilterValue() string {
	return i.Object.Name
}

// Title returns the title for the object item
func (i ObjectItem) Title() string {
	return i.Object.Name
}

// Description returns the description for the object item
func (i ObjectItem) Description() string {
	desc := util.FormatSize(i.Object.Size)
	if i.Object.ContentType != "" {
		desc = fmt.Sprintf("%s - %s", desc, i.Object.ContentType)
	}
	return desc
}

// ObjectListModel represents the object list model
type ObjectListModel struct {
	List     list.Model
	Objects  []storage.Object
	Selected *storage.Object
}

// NewObjectListModel creates a new object list model
func NewObjectListModel(bucket string, width, height int) ObjectListModel {
	listModel := list.New([]list.Item{}, list.NewDefaultDelegate(), width, height)
	listModel.Title = bucket
	listModel.SetShowStatusBar(false)
	listModel.SetFilteringEnabled(true)
	listModel.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		MarginLeft(2)

	return ObjectListModel{
		List:    listModel,
		Objects: []storage.Object{},
	}
}

// SetObjects sets the objects in the list
func (m *ObjectListModel) SetObjects(objects []storage.Object) {
	m.Objects = objects

	items := make([]list.Item, len(objects))
	for i, object := range objects {
		items[i] = ObjectItem{Object: object}
	}

	m.List.SetItems(items)
}

// Update handles object list updates
func (m ObjectListModel) Update(msg tea.Msg) (ObjectListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)

	// Update selected object
	if item, ok := m.List.SelectedItem().(ObjectItem); ok {
		m.Selected = &item.Object
	} else {
		m.Selected = nil
	}

	return m, cmd
}

// View renders the object list
func (m ObjectListModel) View() string {
	return m.List.View()
}
