package carousel

// WindowSize is the number of thumbnails visible in the strip at once
const WindowSize = 4

// State holds the navigation state of one product view
type State struct {
	MainIndex   int // image shown large
	WindowStart int // first image shown in the thumbnail strip
}

// Thumbnail is one entry of the visible strip, paired with its index in
// the full image list so the renderer can compare it with MainIndex
type Thumbnail struct {
	Index int
	Ref   string
}

// Direction represents carousel movement
type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
	DirectionFirst    Direction = "first"
	DirectionLast     Direction = "last"
)
