package render

import "image/color"

// Call is one recorded Surface invocation.
type Call struct {
	Op    string
	Args  []float64
	Alpha float64
	Color color.RGBA
}

// Recorder is a Surface that remembers every call.
type Recorder struct {
	Calls []Call

	alpha  float64
	fill   color.RGBA
	stroke color.RGBA
}

func NewRecorder() *Recorder {
	return &Recorder{alpha: 1}
}

func (r *Recorder) Clear(width, height float64) {
	r.Calls = append(r.Calls, Call{Op: "clear", Args: []float64{width, height}})
}

func (r *Recorder) SetAlpha(a float64)          { r.alpha = a }
func (r *Recorder) SetFillColor(c color.RGBA)   { r.fill = c }
func (r *Recorder) SetStrokeColor(c color.RGBA) { r.stroke = c }

func (r *Recorder) FillCircle(x, y, rad float64) {
	r.Calls = append(r.Calls, Call{Op: "circle", Args: []float64{x, y, rad}, Alpha: r.alpha, Color: r.fill})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64) {
	r.Calls = append(r.Calls, Call{Op: "line", Args: []float64{x0, y0, x1, y1, width}, Alpha: r.alpha, Color: r.stroke})
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	r.alpha = 1
}
