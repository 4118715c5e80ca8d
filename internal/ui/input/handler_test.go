package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"prodview/internal/carousel"
	"prodview/internal/ui/input/types"
)

type fakeContext struct {
	products int
	images   int
	scanning bool
}

func (c fakeContext) HasProduct() bool       { return c.products > 0 }
func (c fakeContext) ProductCount() int      { return c.products }
func (c fakeContext) ImageCount() int        { return c.images }
func (c fakeContext) IsScanning() bool       { return c.scanning }
func (c fakeContext) VisibleThumbnails() int { return min(c.images, carousel.WindowSize) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeActions(t *testing.T) {
	ctx := fakeContext{products: 3, images: 6}

	tests := []struct {
		name string
		key  tea.KeyMsg
		want []types.Action
	}{
		{"next image", runes("l"), []types.Action{types.NavigateImageAction{Direction: carousel.DirectionNext}}},
		{"next image arrow", tea.KeyMsg{Type: tea.KeyRight}, []types.Action{types.NavigateImageAction{Direction: carousel.DirectionNext}}},
		{"previous image", runes("h"), []types.Action{types.NavigateImageAction{Direction: carousel.DirectionPrevious}}},
		{"first image", runes("g"), []types.Action{types.NavigateImageAction{Direction: carousel.DirectionFirst}}},
		{"last image", runes("G"), []types.Action{types.NavigateImageAction{Direction: carousel.DirectionLast}}},
		{"thumbnail", runes("3"), []types.Action{types.SelectThumbnailAction{Offset: 2}}},
		{"next product", runes("]"), []types.Action{types.SwitchProductAction{Delta: 1}}},
		{"next product tab", tea.KeyMsg{Type: tea.KeyTab}, []types.Action{types.SwitchProductAction{Delta: 1}}},
		{"previous product", runes("["), []types.Action{types.SwitchProductAction{Delta: -1}}},
		{"description", runes("d"), []types.Action{types.OpenDescriptionAction{}}},
		{"rescan", runes("r"), []types.Action{types.RescanAction{}}},
		{"quit", runes("q"), []types.Action{types.QuitAction{}}},
		{"force quit", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Action{types.QuitAction{Force: true}}},
		{"unbound", runes("z"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(types.DefaultKeyMap())
			assert.Equal(t, tt.want, h.HandleKey(tt.key, ctx))
		})
	}
}

func TestNormalModeWithoutProduct(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := fakeContext{}

	for _, k := range []string{"l", "h", "1", "]", "d"} {
		assert.Empty(t, h.HandleKey(runes(k), ctx), "key %q", k)
	}
	assert.Equal(t, []types.Action{types.RescanAction{}}, h.HandleKey(runes("r"), ctx))
}

func TestNormalModeThumbnailBeyondStrip(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := fakeContext{products: 1, images: 2}

	assert.Equal(t, []types.Action{types.SelectThumbnailAction{Offset: 1}}, h.HandleKey(runes("2"), ctx))
	assert.Empty(t, h.HandleKey(runes("3"), ctx))
	assert.Empty(t, h.HandleKey(runes("4"), ctx))
}

func TestNormalModeSingleProductDoesNotSwitch(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := fakeContext{products: 1, images: 1}

	assert.Empty(t, h.HandleKey(runes("]"), ctx))
	assert.Empty(t, h.HandleKey(runes("["), ctx))
}

func TestNormalModeRescanWhileScanning(t *testing.T) {
	h := New(types.DefaultKeyMap())
	assert.Empty(t, h.HandleKey(runes("r"), fakeContext{products: 1, images: 1, scanning: true}))
}

func TestHelpModeTransitions(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := fakeContext{products: 2, images: 3}

	actions := h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.SetHelpVisibleAction{Visible: true}}, actions)
	assert.Equal(t, types.ModeHelp, h.CurrentMode())
	assert.Equal(t, "help", h.ModeName())

	assert.Equal(t, []types.Action{types.ScrollHelpAction{Delta: 1}}, h.HandleKey(runes("j"), ctx))
	assert.Equal(t, []types.Action{types.ScrollHelpAction{Delta: -1}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx))
	assert.Empty(t, h.HandleKey(runes("l"), ctx))

	actions = h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.SetHelpVisibleAction{Visible: false}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestHelpModeQuitClosesHelp(t *testing.T) {
	h := New(types.DefaultKeyMap())
	ctx := fakeContext{products: 1, images: 1}
	h.HandleKey(runes("?"), ctx)

	assert.Equal(t, []types.Action{types.SetHelpVisibleAction{Visible: false}}, h.HandleKey(runes("q"), ctx))

	h.HandleKey(runes("?"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx))
}

func TestReset(t *testing.T) {
	h := New(types.DefaultKeyMap())
	h.HandleKey(runes("?"), fakeContext{})
	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
