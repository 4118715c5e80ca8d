package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/carousel"
	"prodview/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeHelp}}, true

	case key.Matches(msg, m.keys.Rescan):
		if ctx.IsScanning() {
			return nil, true
		}
		return []types.Action{types.RescanAction{}}, true
	}

	// Everything below acts on the current product
	if !ctx.HasProduct() {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.NextImage):
		return []types.Action{types.NavigateImageAction{Direction: carousel.DirectionNext}}, true

	case key.Matches(msg, m.keys.PrevImage):
		return []types.Action{types.NavigateImageAction{Direction: carousel.DirectionPrevious}}, true

	case key.Matches(msg, m.keys.FirstImage):
		return []types.Action{types.NavigateImageAction{Direction: carousel.DirectionFirst}}, true

	case key.Matches(msg, m.keys.LastImage):
		return []types.Action{types.NavigateImageAction{Direction: carousel.DirectionLast}}, true

	case key.Matches(msg, m.keys.Thumbnail):
		offset := int(msg.String()[0] - '1')
		if offset >= ctx.VisibleThumbnails() {
			// No thumbnail at that slot
			return nil, true
		}
		return []types.Action{types.SelectThumbnailAction{Offset: offset}}, true

	case key.Matches(msg, m.keys.NextProduct):
		if ctx.ProductCount() < 2 {
			return nil, true
		}
		return []types.Action{types.SwitchProductAction{Delta: 1}}, true

	case key.Matches(msg, m.keys.PrevProduct):
		if ctx.ProductCount() < 2 {
			return nil, true
		}
		return []types.Action{types.SwitchProductAction{Delta: -1}}, true

	case key.Matches(msg, m.keys.Description):
		return []types.Action{types.OpenDescriptionAction{}}, true
	}

	return nil, false
}
