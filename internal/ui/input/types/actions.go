package types

import "prodview/internal/carousel"

// Carousel actions
type NavigateImageAction struct {
	Direction carousel.Direction
}

func (a NavigateImageAction) Type() string { return "navigate_image" }

type SelectThumbnailAction struct {
	Offset int // position within the visible window
}

func (a SelectThumbnailAction) Type() string { return "select_thumbnail" }

// Catalog actions
type SwitchProductAction struct {
	Delta int // +1 next, -1 previous
}

func (a SwitchProductAction) Type() string { return "switch_product" }

type OpenDescriptionAction struct{}

func (a OpenDescriptionAction) Type() string { return "open_description" }

type RescanAction struct{}

func (a RescanAction) Type() string { return "rescan" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Help popup actions
type SetHelpVisibleAction struct {
	Visible bool
}

func (a SetHelpVisibleAction) Type() string { return "set_help_visible" }

type ScrollHelpAction struct {
	Delta int
}

func (a ScrollHelpAction) Type() string { return "scroll_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
