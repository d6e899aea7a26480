package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dialog's bindings.
type KeyMap struct {
	Find       key.Binding
	Focus      key.Binding
	Quit       key.Binding
	Cancel     key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Select     key.Binding
	Delete     key.Binding
	DeleteAll  key.Binding
	SortPath   key.Binding
	SortName   key.Binding
	SortData   key.Binding
	Copy       key.Binding
	GoTo       key.Binding
	Save       key.Binding
	Yes        key.Binding
	No         key.Binding
	ToggleKeys key.Binding
	ToggleVals key.Binding
	ToggleData key.Binding
	ToggleWord key.Binding
	ToggleCase key.Binding
	ToggleStd  key.Binding
	ToggleReal key.Binding
	ToggleApp  key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Find:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "find")),
	Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "close")),
	Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop search")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
	DeleteAll:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
	SortPath:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort path")),
	SortName:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort name")),
	SortData:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort data")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	GoTo:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "go to")),
	Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Yes:        key.NewBinding(key.WithKeys("y", "Y")),
	No:         key.NewBinding(key.WithKeys("n", "N", "esc")),
	ToggleKeys: key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "keys")),
	ToggleVals: key.NewBinding(key.WithKeys("alt+v"), key.WithHelp("alt+v", "values")),
	ToggleData: key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "data")),
	ToggleWord: key.NewBinding(key.WithKeys("alt+w"), key.WithHelp("alt+w", "whole words")),
	ToggleCase: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "match case")),
	ToggleStd:  key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "std roots")),
	ToggleReal: key.NewBinding(key.WithKeys("alt+r"), key.WithHelp("alt+r", "REGISTRY")),
	ToggleApp:  key.NewBinding(key.WithKeys("alt+a"), key.WithHelp("alt+a", "append")),
}
