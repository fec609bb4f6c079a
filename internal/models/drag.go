package models

type Dropzone struct {
	ID     string  `json:"id" validate:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
	Label  string  `json:"label,omitempty"`
}

func (d Dropzone) Rect() Rect {
	return Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}
}

type DraggableItem struct {
	ID                string  `json:"id" validate:"required"`
	Text              string  `json:"text"`
	Image             string  `json:"image,omitempty"`
	Width             float64 `json:"width" validate:"gt=0"`
	Height            float64 `json:"height" validate:"gt=0"`
	InitialX          float64 `json:"initialX"`
	InitialY          float64 `json:"initialY"`
	CorrectDropzoneID string  `json:"correctDropzoneId,omitempty"`
}

func (d DraggableItem) Size() Size {
	return Size{Width: d.Width, Height: d.Height}
}

func (d DraggableItem) InitialPosition() Point {
	return Point{X: d.InitialX, Y: d.InitialY}
}

type ImageFit struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	ScaleX   *float64 `json:"scaleX,omitempty"`
	ScaleY   *float64 `json:"scaleY,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
}

type DragContent struct {
	Image      string          `json:"image,omitempty"`
	ImageFit   *ImageFit       `json:"imageFit,omitempty"`
	Dropzones  []Dropzone      `json:"dropzones" validate:"required,min=1,dive"`
	Draggables []DraggableItem `json:"draggables" validate:"required,min=1,dive"`
}

// DropzoneByID returns the dropzone with the given id, if any.
func (c *DragContent) DropzoneByID(id string) (Dropzone, bool) {
	for _, dz := range c.Dropzones {
		if dz.ID == id {
			return dz, true
		}
	}
	return Dropzone{}, false
}

type DraggableState struct {
	DraggableItem
	Position  Point `json:"position"`
	Draggable bool  `json:"draggable"`
	Correct   *bool `json:"correct,omitempty"`
}

type DragResult struct {
	Results map[string]bool `json:"results"`
	Score   Score           `json:"score"`
}

type DragSnapshot struct {
	Image      string           `json:"image,omitempty"`
	ImageFit   *ImageFit        `json:"imageFit,omitempty"`
	Stage      Size             `json:"stage"`
	Dropzones  []Dropzone       `json:"dropzones"`
	Draggables []DraggableState `json:"draggables"`
	Validated  bool             `json:"validated"`
	Result     *DragResult      `json:"result,omitempty"`
}
