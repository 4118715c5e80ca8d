package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/ui/input/types"
)

// HelpMode is active while the help popup is shown
type HelpMode struct {
	keys types.KeyMap
}

func NewHelpMode(keys types.KeyMap) *HelpMode {
	return &HelpMode{keys: keys}
}

func (m *HelpMode) Name() string {
	return "help"
}

func (m *HelpMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.SetHelpVisibleAction{Visible: true}}
}

func (m *HelpMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.SetHelpVisibleAction{Visible: false}}
}

func (m *HelpMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.CloseHelp):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case key.Matches(msg, m.keys.ScrollUp):
		return []types.Action{types.ScrollHelpAction{Delta: -1}}, true
	case key.Matches(msg, m.keys.ScrollDown):
		return []types.Action{types.ScrollHelpAction{Delta: 1}}, true
	}

	// The popup swallows everything else
	return nil, true
}
