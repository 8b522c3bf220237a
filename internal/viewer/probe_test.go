package viewer

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/Faultbox/phaseview/internal/engine/input"
	"github.com/Faultbox/phaseview/internal/gui"
)

func within(got, want, tol float32) bool {
	d := got - want
	return d >= -tol && d <= tol
}

func TestProbeFlatCenter(t *testing.T) {
	v, _, _ := newTestViewer(t)
	v.SetDisplacementScale(0)

	res, ok := v.Probe(400, 300)
	if !ok {
		t.Fatal("center pixel should hit the plane")
	}
	if !within(res.U, 0.5, 0.01) || !within(res.V, 0.5, 0.01) {
		t.Errorf("uv = (%v, %v), want (0.5, 0.5)", res.U, res.V)
	}
	// Halfway between the texels holding 96 and 128.
	if !within(res.Sample, 112.0/255, 0.02) {
		t.Errorf("sample = %v, want %v", res.Sample, 112.0/255)
	}
}

func TestProbeFollowsRelief(t *testing.T) {
	v, _, _ := newTestViewer(t)

	// The camera looks down the -Y/-Z diagonal, so a raised surface is hit
	// before the ray reaches the plane's center: further up in the image.
	res, ok := v.Probe(400, 300)
	if !ok {
		t.Fatal("center pixel should hit the relief")
	}
	if res.V >= 0.45 || res.V <= 0.35 {
		t.Errorf("v = %v, want the raised hit near 0.41", res.V)
	}
	if !within(res.Position[2], 0.2*res.Sample, 0.01) {
		t.Errorf("hit height = %v, want scale*sample = %v", res.Position[2], 0.2*res.Sample)
	}
}

func TestProbeMiss(t *testing.T) {
	v, _, _ := newTestViewer(t)
	if _, ok := v.Probe(0, 0); ok {
		t.Error("top-left corner looks past the plane")
	}
}

func TestProbeUpdatesReadout(t *testing.T) {
	v, _, events := newTestViewer(t)
	readout := phaseReadout(t, v)

	events.push(input.Event{Type: input.EventMouseMove, MouseX: 400, MouseY: 300})
	v.PollEvents()
	if readout.Text() == "-" {
		t.Error("readout not updated over the plane")
	}

	events.push(input.Event{Type: input.EventMouseMove, MouseX: 0, MouseY: 0})
	v.PollEvents()
	if readout.Text() != "-" {
		t.Errorf("readout = %q off the plane, want -", readout.Text())
	}
}

func TestProbeSkippedOverOverlay(t *testing.T) {
	v, surface, events := newTestViewer(t)
	surface.overlay = func(input.Event) bool { return true }
	readout := phaseReadout(t, v)

	events.push(input.Event{Type: input.EventMouseMove, MouseX: 400, MouseY: 300})
	v.PollEvents()
	if readout.Text() != "-" {
		t.Errorf("readout = %q while the panel has the pointer", readout.Text())
	}
}

func TestSampleRed(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	tests := []struct {
		u    float32
		want float32
	}{
		{0, 0},
		{0.25, 0},
		{0.5, 0.5},
		{0.75, 1},
		{1, 1},
	}
	for _, tt := range tests {
		if got := sampleRed(img, tt.u, 0.5); !within(got, tt.want, 1e-5) {
			t.Errorf("sampleRed(u=%v) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func phaseReadout(t *testing.T, v *Viewer) *gui.Readout {
	t.Helper()
	for _, it := range v.Panel().Items() {
		if r, ok := it.(*gui.Readout); ok && r.Label() == LabelPhase {
			return r
		}
	}
	t.Fatal("phase readout missing")
	return nil
}

func TestReadoutFollowsCamera(t *testing.T) {
	v, _, events := newTestViewer(t)
	v.SetDisplacementScale(0)
	readout := phaseReadout(t, v)

	events.push(input.Event{Type: input.EventMouseMove, MouseX: 400, MouseY: 300})
	v.PollEvents()
	if err := v.Frame(); err != nil {
		t.Fatal(err)
	}
	centre := readout.Text()
	if centre == "-" {
		t.Fatal("readout not set over the plane")
	}

	// Pan with the pointer still: the plane slides under the cursor.
	v.Controls().Pan(40, 0)
	if err := v.Frame(); err != nil {
		t.Fatal(err)
	}
	res, ok := v.Probe(400, 300)
	if !ok {
		t.Fatal("panned view should still hit the plane")
	}
	if want := fmt.Sprintf("%.3f", res.Sample); readout.Text() != want {
		t.Errorf("readout = %q after pan, want %q", readout.Text(), want)
	}
	if readout.Text() == centre {
		t.Errorf("readout stayed %q after pan", centre)
	}

	events.push(input.Event{Type: input.EventKeyDown, Key: input.KeyR})
	v.PollEvents()
	if err := v.Frame(); err != nil {
		t.Fatal(err)
	}
	if readout.Text() != centre {
		t.Errorf("readout = %q after reset, want %q", readout.Text(), centre)
	}
}

func TestReadoutFollowsScale(t *testing.T) {
	v, _, events := newTestViewer(t)
	readout := phaseReadout(t, v)

	// Left of centre the ray runs across the ramp, so a taller relief is
	// met at a different column.
	events.push(input.Event{Type: input.EventMouseMove, MouseX: 300, MouseY: 300})
	v.PollEvents()
	before := readout.Text()

	v.SetDisplacementScale(1)
	if err := v.Frame(); err != nil {
		t.Fatal(err)
	}
	res, ok := v.Probe(300, 300)
	if !ok {
		t.Fatal("pixel should hit the relief")
	}
	if want := fmt.Sprintf("%.3f", res.Sample); readout.Text() != want {
		t.Errorf("readout = %q after scale change, want %q", readout.Text(), want)
	}
	if readout.Text() == before {
		t.Errorf("readout stayed %q after scale change", before)
	}
}
