package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the product view
type KeyMap struct {
	NextImage   key.Binding
	PrevImage   key.Binding
	FirstImage  key.Binding
	LastImage   key.Binding
	Thumbnail   key.Binding
	NextProduct key.Binding
	PrevProduct key.Binding
	Description key.Binding
	Rescan      key.Binding
	Help        key.Binding
	CloseHelp   key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextImage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next image"),
		),
		PrevImage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous image"),
		),
		FirstImage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "first image"),
		),
		LastImage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "last image"),
		),
		Thumbnail: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "select thumbnail"),
		),
		NextProduct: key.NewBinding(
			key.WithKeys("]", "tab"),
			key.WithHelp("]/tab", "next product"),
		),
		PrevProduct: key.NewBinding(
			key.WithKeys("[", "shift+tab"),
			key.WithHelp("[/S-tab", "previous product"),
		),
		Description: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "full description"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan catalog"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		CloseHelp: key.NewBinding(
			key.WithKeys("?", "esc", "q"),
			key.WithHelp("esc", "close help"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevImage, k.NextImage, k.Thumbnail, k.NextProduct, k.Description, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextImage, k.PrevImage, k.FirstImage, k.LastImage, k.Thumbnail},
		{k.NextProduct, k.PrevProduct, k.Description, k.Rescan},
		{k.Help, k.Quit},
	}
}
