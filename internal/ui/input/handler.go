package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"prodview/internal/ui/input/modes"
	"prodview/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
}

func New(keys types.KeyMap) *Handler {
	h := &Handler{
		currentMode: types.ModeNormal,
		modes:       make(map[types.Mode]types.ModeHandler),
		keys:        keys,
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[types.ModeHelp] = modes.NewHelpMode(keys)

	return h
}

// HandleKey routes a key to the current mode and resolves mode changes into
// the exit and enter actions of the modes involved
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		if changeMode.Mode == h.currentMode {
			continue
		}

		if current := h.modes[h.currentMode]; current != nil {
			allActions = append(allActions, current.Exit(ctx)...)
		}
		h.currentMode = changeMode.Mode
		if next := h.modes[h.currentMode]; next != nil {
			allActions = append(allActions, next.Enter(ctx)...)
		}
	}

	return allActions
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if handler := h.modes[h.currentMode]; handler != nil {
		return handler.Name()
	}
	return ""
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
}
