package shaderbox_test

import (
	"testing"

	"github.com/go-theft-auto/shaderbox"
)

func linkedProgram(t *testing.T, dev *mockDevice) *shaderbox.Program {
	t.Helper()
	vs, _ := shaderbox.Compile(dev, testVertexSource, shaderbox.VertexStage)
	fs, _ := shaderbox.Compile(dev, testFragmentSource, shaderbox.FragmentStage)
	p, err := shaderbox.Link(dev, vs, fs)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	return p
}

func TestResizeSequence(t *testing.T) {
	dev := newMockDevice()
	s := shaderbox.NewSurface(dev, linkedProgram(t, dev))

	sizes := [][2]int{{800, 600}, {800, 400}, {1920, 1080}, {300, 900}}
	for _, sz := range sizes {
		s.Resize(sz[0], sz[1])

		want := float32(sz[0]) / float32(sz[1])
		if got := dev.lastWrite(t, shaderbox.UniformAspect); got != want {
			t.Errorf("after %dx%d aspect uniform = %v, want %v", sz[0], sz[1], got, want)
		}
		vp := dev.viewports[len(dev.viewports)-1]
		if vp != [4]int32{0, 0, int32(sz[0]), int32(sz[1])} {
			t.Errorf("after %dx%d viewport = %v", sz[0], sz[1], vp)
		}
		if s.Viewport().Aspect != want {
			t.Errorf("Viewport().Aspect = %v, want %v", s.Viewport().Aspect, want)
		}
	}
}

func TestResizeIdempotent(t *testing.T) {
	dev := newMockDevice()
	s := shaderbox.NewSurface(dev, linkedProgram(t, dev))

	if !s.Resize(640, 480) {
		t.Fatal("first resize should apply")
	}
	if s.Resize(640, 480) {
		t.Error("repeated resize should be a no-op")
	}
	if n := len(dev.viewports); n != 1 {
		t.Errorf("expected 1 viewport call, got %d", n)
	}
	if n := len(dev.writes[dev.uniforms[shaderbox.UniformAspect]]); n != 1 {
		t.Errorf("expected 1 aspect write, got %d", n)
	}
}

func TestResizeZeroHeightClamped(t *testing.T) {
	dev := newMockDevice()
	s := shaderbox.NewSurface(dev, linkedProgram(t, dev))

	s.Resize(500, 0)
	vp := s.Viewport()
	if vp.Height != 1 || vp.Aspect != 500 {
		t.Errorf("viewport = %+v, want height 1 and aspect 500", vp)
	}

	s.Resize(0, 0)
	if got := dev.lastWrite(t, shaderbox.UniformAspect); got != 1 {
		t.Errorf("aspect for 0x0 = %v, want 1", got)
	}
}

func TestResizeWithoutProgram(t *testing.T) {
	dev := newMockDevice()
	s := shaderbox.NewSurface(dev, nil)
	s.Resize(100, 50)
	if len(dev.viewports) != 1 {
		t.Error("expected viewport to be applied without a program")
	}
}
