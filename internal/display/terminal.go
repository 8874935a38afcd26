package display

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iwtcode/vehicleDash/models"
)

const defaultFrameTime = 100 * time.Millisecond

// Terminal отображает слоты в консоли. Записи в слоты копятся в pending и
// применяются пачкой не чаще одного раза за кадр; для каждого слота выживает
// последняя запись.
type Terminal struct {
	app       *tview.Application
	title     *tview.TextView
	cells     map[models.SlotID]*tview.TextView
	mu        sync.Mutex
	pending   map[models.SlotID]string
	frameTime time.Duration
	quit      chan struct{}
	stopOnce  sync.Once
}

// NewTerminal строит раскладку: заголовок сверху и сетка подписанных ячеек.
func NewTerminal() *Terminal {
	t := &Terminal{
		app:       tview.NewApplication(),
		cells:     make(map[models.SlotID]*tview.TextView),
		pending:   make(map[models.SlotID]string),
		frameTime: defaultFrameTime,
		quit:      make(chan struct{}),
	}

	t.title = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(false)
	t.title.SetTextColor(tcell.ColorYellow)
	t.cells[models.SlotTitle] = t.title

	const columns = 3
	grid := tview.NewGrid()
	row := 0
	col := 0
	for _, id := range models.AllSlots() {
		if id == models.SlotTitle {
			continue
		}
		cell := tview.NewTextView().
			SetTextAlign(tview.AlignCenter).
			SetWrap(false)
		cell.SetBorder(true).
			SetTitle(id.Label()).
			SetTitleAlign(tview.AlignCenter)
		t.cells[id] = cell
		grid.AddItem(cell, row, col, 1, 1, 0, 0, false)
		col++
		if col == columns {
			col = 0
			row++
		}
	}

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.title, 1, 0, false).
		AddItem(grid, 0, 1, false)
	t.app.SetRoot(layout, true).EnableMouse(false)

	return t
}

// SlotChanged реализует models.SlotObserver. Не блокируется.
func (t *Terminal) SlotChanged(id models.SlotID, text string) {
	if _, ok := t.cells[id]; !ok {
		return
	}
	t.mu.Lock()
	t.pending[id] = text
	t.mu.Unlock()
}

// Text возвращает отображаемый текст ячейки.
func (t *Terminal) Text(id models.SlotID) string {
	cell, ok := t.cells[id]
	if !ok {
		return ""
	}
	return cell.GetText(true)
}

// Run блокируется, пока пользователь не закроет экран или не будет вызван Stop.
func (t *Terminal) Run() error {
	go t.flushLoop()
	return t.app.Run()
}

// Stop останавливает обновления и освобождает терминал.
func (t *Terminal) Stop() {
	t.stopOnce.Do(func() {
		close(t.quit)
		t.app.Stop()
	})
}

func (t *Terminal) flushLoop() {
	ticker := time.NewTicker(t.frameTime)
	defer ticker.Stop()

	for {
		select {
		case <-t.quit:
			return
		case <-ticker.C:
			if t.hasPending() {
				t.app.QueueUpdateDraw(t.applyPending)
			}
		}
	}
}

func (t *Terminal) hasPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending) > 0
}

// applyPending переносит накопленные записи в ячейки. Вызывается в потоке отрисовки.
func (t *Terminal) applyPending() {
	t.mu.Lock()
	batch := t.pending
	t.pending = make(map[models.SlotID]string, len(batch))
	t.mu.Unlock()

	for id, text := range batch {
		t.cells[id].SetText(text)
	}
}
