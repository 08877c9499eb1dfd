package tpp

// Action is a classified operator intent, produced by a backend's key
// mapping and consumed by the controller driving a Navigator. Keys
// with no binding classify as ActionAdvance.
type Action uint8

const (
	ActionAdvance Action = iota
	ActionRetreat
	ActionQuit
	ActionReload
	ActionFirst
	ActionJump
	ActionHelp
	ActionEdit
	ActionResize
)

// Navigator is the slide-navigation state machine: the current page
// index plus each page's cursor and end-of-page flag. It owns the
// Document for the lifetime of one load and drives the backend through
// a Dispatcher. Interactive and timer-driven modes share the same
// drive loop; only what resumes after a pause differs.
type Navigator struct {
	doc     *Document
	disp    *Dispatcher
	backend Backend
	page    int
}

// NewNavigator returns a Navigator over doc rendering to b.
func NewNavigator(doc *Document, b Backend) *Navigator {
	return &Navigator{doc: doc, disp: NewDispatcher(b), backend: b}
}

// Document returns the currently loaded document.
func (n *Navigator) Document() *Document { return n.doc }

// PageIndex returns the current page index.
func (n *Navigator) PageIndex() int { return n.page }

// PageCount returns the number of pages in the current document.
func (n *Navigator) PageCount() int { return n.doc.PageCount() }

// Page returns the current page.
func (n *Navigator) Page() *Page { return n.doc.Pages[n.page] }

// EnterPage rewinds the current page and resets the backend's per-page
// state. Controllers call it whenever a page starts or restarts.
func (n *Navigator) EnterPage() {
	n.Page().Reset()
	n.backend.NewPage()
}

// RunPage dispatches lines from the current page until a pause marker
// or the end of the page. It reports true when it stopped for a pause;
// false means the page is exhausted and its end-of-page flag is set.
func (n *Navigator) RunPage() bool {
	p := n.Page()
	for {
		line, ok := p.NextLine()
		if !ok {
			return false
		}
		if n.disp.Dispatch(line) {
			return true
		}
	}
}

// Advance moves to the next page, but only once the current page has
// ended; before that the operator's advance merely resumes the drive
// loop. Past the last page it is a no-op. It reports whether the page
// index changed.
func (n *Navigator) Advance() bool {
	if !n.Page().EOP() {
		return false
	}
	if n.page+1 >= n.doc.PageCount() {
		return false
	}
	n.page++
	return true
}

// AdvanceWrap is the timer-driven variant of Advance: past the last
// page it wraps to page 0 instead of stopping.
func (n *Navigator) AdvanceWrap() bool {
	if !n.Page().EOP() {
		return false
	}
	n.page = (n.page + 1) % n.doc.PageCount()
	return true
}

// Retreat moves to the previous page, clamped at page 0. It always
// reports true: even at page 0 the page restarts from the top.
func (n *Navigator) Retreat() bool {
	if n.page > 0 {
		n.page--
	}
	return true
}

// Jump moves to an arbitrary page index. Out-of-range targets are
// ignored, never an error.
func (n *Navigator) Jump(idx int) bool {
	if idx < 0 || idx >= n.doc.PageCount() {
		return false
	}
	n.page = idx
	return true
}

// First rewinds to the first page.
func (n *Navigator) First() {
	n.page = 0
}

// SetDocument replaces the document after a reload, keeping the
// current page index when the new document still has that page.
func (n *Navigator) SetDocument(doc *Document) {
	n.doc = doc
	if n.page >= doc.PageCount() {
		n.page = 0
	}
}

// RunAll replays every page front to back, ignoring pause markers.
// Export backends use it to emit the whole document in one pass.
func (n *Navigator) RunAll() {
	for i := range n.doc.Pages {
		n.page = i
		n.EnterPage()
		for n.RunPage() {
		}
	}
}
