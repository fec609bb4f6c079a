package widgets

import (
	"math/rand"
	"sync"

	"github.com/SAP-F-2025/widget-service/internal/models"
	"github.com/SAP-F-2025/widget-service/internal/verify"
)

// snapJitter bounds the random offset added on snap.
const snapJitter = 0.001

type DragBoard struct {
	mu        sync.Mutex
	content   *models.DragContent
	stage     models.Size
	rnd       *rand.Rand
	positions map[string]models.Point
	result    *models.DragResult
	closed    bool
}

func NewDragBoard(content *models.DragContent, rnd *rand.Rand) *DragBoard {
	positions := make(map[string]models.Point, len(content.Draggables))
	for _, item := range content.Draggables {
		positions[item.ID] = item.InitialPosition()
	}
	return &DragBoard{
		content:   content,
		stage:     verify.DefaultStage,
		rnd:       rnd,
		positions: positions,
	}
}

func (b *DragBoard) Kind() models.WidgetType { return models.WidgetDrag }

// Drop ends a drag of itemID at pos. The item snaps into the first dropzone
// its center falls in, otherwise it stays where dropped, kept on stage.
func (b *DragBoard) Drop(itemID string, pos models.Point) (models.Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.Point{}, ErrClosed
	}
	if b.result != nil {
		return models.Point{}, ErrLocked
	}

	item, ok := b.item(itemID)
	if !ok {
		return models.Point{}, ErrUnknownItem
	}

	size := item.Size()
	next := verify.ClampToStage(pos, size, b.stage)
	if zone, found := verify.FindDropzone(verify.Center(pos, size), b.content.Dropzones); found {
		jitter := models.Point{X: b.rnd.Float64() * snapJitter, Y: b.rnd.Float64() * snapJitter}
		next = verify.SnapPosition(zone, size, jitter)
	}

	b.positions[itemID] = next
	return next, nil
}

func (b *DragBoard) Validate() (models.DragResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return models.DragResult{}, ErrClosed
	}
	if b.result != nil {
		return models.DragResult{}, ErrAlreadyValidated
	}

	res := verify.ScorePlacements(b.content, b.positions)
	b.result = &res
	return res, nil
}

func (b *DragBoard) item(id string) (models.DraggableItem, bool) {
	for _, item := range b.content.Draggables {
		if item.ID == id {
			return item, true
		}
	}
	return models.DraggableItem{}, false
}

func (b *DragBoard) Snapshot() interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]models.DraggableState, len(b.content.Draggables))
	for i, item := range b.content.Draggables {
		state := models.DraggableState{
			DraggableItem: item,
			Position:      b.positions[item.ID],
			Draggable:     b.result == nil && !b.closed,
		}
		if b.result != nil {
			correct := b.result.Results[item.ID]
			state.Correct = &correct
		}
		items[i] = state
	}

	snap := models.DragSnapshot{
		Image:      b.content.Image,
		ImageFit:   b.content.ImageFit,
		Stage:      b.stage,
		Dropzones:  append([]models.Dropzone(nil), b.content.Dropzones...),
		Draggables: items,
		Validated:  b.result != nil,
	}
	if b.result != nil {
		res := *b.result
		snap.Result = &res
	}
	return snap
}

func (b *DragBoard) Marks() Marks {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := Marks{Total: float64(len(b.content.Draggables))}
	if b.result != nil {
		m.Obtained = float64(b.result.Score.Correct)
		m.Finished = true
	}
	return m
}

func (b *DragBoard) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}
