package systems

import "testing"

func newTestObstacles() *Obstacles {
	return NewObstacles(20, 8, 5)
}

func TestObstacles_StrokeInterpolates(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(0, 0)
	o.ExtendStroke(20, 0)
	o.EndStroke()

	// Start point plus ceil(20/5) fill points.
	if o.Len() != 5 {
		t.Fatalf("expected 5 points, got %d", o.Len())
	}
	if len(o.Strokes()) != 1 {
		t.Fatalf("expected 1 retired stroke, got %d", len(o.Strokes()))
	}
	last := o.Strokes()[0][4]
	if last.X != 20 || last.Y != 0 {
		t.Errorf("stroke should end at the target, got (%v, %v)", last.X, last.Y)
	}
	for x := float32(0); x <= 20; x += 2.5 {
		if !o.IsNear(x, 0, 1) {
			t.Errorf("gap in wall at x=%v", x)
		}
	}
}

func TestObstacles_ShortMovesIgnored(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(0, 0)
	o.ExtendStroke(2, 0)
	o.ExtendStroke(4, 0)

	if o.Len() != 1 {
		t.Errorf("moves under the draw distance should be ignored, got %d points", o.Len())
	}
}

func TestObstacles_IndexedWhileDrawing(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(50, 50)
	o.ExtendStroke(60, 50)

	if !o.Drawing() {
		t.Fatal("expected stroke in progress")
	}
	if !o.IsNear(60, 50, 1) {
		t.Error("points of the active stroke must be queryable immediately")
	}
}

func TestObstacles_ExtendWithoutBegin(t *testing.T) {
	o := newTestObstacles()
	o.ExtendStroke(10, 10)

	if !o.Drawing() || o.Len() != 1 {
		t.Errorf("extend without begin should start a stroke, drawing=%v len=%d", o.Drawing(), o.Len())
	}
}

func TestObstacles_EraseRoundTrip(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(100, 100)
	o.EndStroke()

	if !o.IsNear(100, 100, 5) {
		t.Fatal("expected obstacle near (100,100) after drawing")
	}
	if !o.EraseAt(100, 100, 10) {
		t.Error("erase should report a removal")
	}
	if o.IsNear(100, 100, 5) {
		t.Error("obstacle still indexed after erase")
	}
	if len(o.Strokes()) != 0 {
		t.Errorf("empty stroke should be dropped, got %d strokes", len(o.Strokes()))
	}
}

func TestObstacles_EraseSplitsNothingElse(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(0, 0)
	o.ExtendStroke(100, 0)
	o.EndStroke()
	before := o.Len()

	o.EraseAt(50, 0, 6)

	if o.Len() >= before {
		t.Fatalf("expected points removed, before=%d after=%d", before, o.Len())
	}
	if !o.IsNear(0, 0, 1) || !o.IsNear(100, 0, 1) {
		t.Error("points outside the erase radius were removed")
	}
	if got := len(o.Points()); got != o.Len() {
		t.Errorf("stroke points (%d) out of sync with grid (%d)", got, o.Len())
	}
}

func TestObstacles_Clear(t *testing.T) {
	o := newTestObstacles()
	o.BeginStroke(0, 0)
	o.ExtendStroke(30, 0)
	o.Clear()

	if o.Len() != 0 || o.Drawing() || len(o.Strokes()) != 0 {
		t.Errorf("clear left state behind: len=%d drawing=%v strokes=%d", o.Len(), o.Drawing(), len(o.Strokes()))
	}
}
