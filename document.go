package main

// Document tracks the identity of the diagram being edited and whether
// the buffer has diverged from what was last persisted.
type Document struct {
	name   string
	handle Handle
	dirty  bool
}

// Reset adopts a new identity and clears the dirty flag. Used after a
// successful load or save-as, and when starting a fresh document.
func (d *Document) Reset(name string, handle Handle) {
	d.name = name
	d.handle = handle
	d.dirty = false
}

// MarkDirty records an unsaved edit. An unnamed document has nothing
// persisted to diverge from, so it stays clean until it gains a name.
func (d *Document) MarkDirty() {
	if d.name == "" {
		return
	}
	d.dirty = true
}

// MarkClean records that the buffer matches persisted state.
func (d *Document) MarkClean() {
	d.dirty = false
}

func (d *Document) Name() string {
	return d.name
}

func (d *Document) Handle() Handle {
	return d.handle
}

func (d *Document) Dirty() bool {
	return d.dirty
}

// DisplayName is the name shown in the status line and confirmation
// prompts.
func (d *Document) DisplayName() string {
	if d.name == "" {
		return "untitled"
	}
	return d.name
}
