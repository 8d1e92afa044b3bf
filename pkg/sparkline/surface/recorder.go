package surface

// Recorder is an in-memory Surface. It keeps the last mounted view and
// lets tests and terminal front ends inject pointer events.
type Recorder struct {
	View    *View
	Error   string
	Mounts  int
	Updates []string

	// BBox is reported by BoundingBox. When zero the view is assumed to
	// be drawn at its requested size at the origin.
	BBox BBox

	handler PointerHandler
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Mount(v *View, h PointerHandler) error {
	r.View = v
	r.Error = ""
	r.handler = h
	r.Mounts++
	return nil
}

func (r *Recorder) ShowError(message string) error {
	r.View = nil
	r.handler = nil
	r.Error = message
	return nil
}

func (r *Recorder) Update(g *Group) {
	r.Updates = append(r.Updates, g.ID)
}

func (r *Recorder) Clear() {
	r.View = nil
	r.Error = ""
	r.handler = nil
}

func (r *Recorder) BoundingBox() BBox {
	if r.BBox != (BBox{}) || r.View == nil {
		return r.BBox
	}
	return BBox{Width: r.View.Width, Height: r.View.Height}
}

// Move delivers a pointer move to the mounted chart, if any.
func (r *Recorder) Move(clientX, clientY float64) {
	if r.handler != nil {
		r.handler.PointerMove(clientX, clientY)
	}
}

// Leave delivers a pointer leave to the mounted chart, if any.
func (r *Recorder) Leave() {
	if r.handler != nil {
		r.handler.PointerLeave()
	}
}

// Find returns the mounted group with the given id.
func (r *Recorder) Find(id string) *Group {
	if r.View == nil {
		return nil
	}
	return Find(r.View.Root, id)
}
