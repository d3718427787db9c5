package descriptor

import (
	"errors"
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestNew_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want error
	}{
		{"nothing", Input{}, ErrInvalidInput},
		{"partial rgb", Input{Red: Value(1), Green: Value(2)}, ErrInvalidInput},
		{"partial hsi", Input{Hue: Value(10), Intensity: Value(1)}, ErrInvalidInput},
		{
			"both groups",
			Input{Red: Value(1), Green: Value(2), Blue: Value(3), Hue: Value(0), Saturation: Value(1), Intensity: Value(1)},
			ErrInvalidInput,
		},
		{"hsi with white level", Input{Hue: Value(0), Saturation: Value(1), Intensity: Value(1), White: Value(5), WhiteEnabled: true}, ErrInvalidInput},
		{"white without emitter", Input{Red: Value(1), Green: Value(2), Blue: Value(3), White: Value(4)}, ErrWhiteNotEnabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNew_RGB(t *testing.T) {
	c, err := New(Input{Red: Value(255), Green: Value(0), Blue: Value(0)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Representation() != RepresentationRGB {
		t.Errorf("Representation() = %v, want RGB", c.Representation())
	}
	if !approx(c.Hue(), 0, 1e-9) || !approx(c.Saturation(), 1, 1e-9) || !approx(c.Intensity(), 1, 1e-9) {
		t.Errorf("HSI = (%v, %v, %v), want (0, 1, 1)", c.Hue(), c.Saturation(), c.Intensity())
	}
	if _, ok := c.White(); ok {
		t.Error("expected no white level without a white emitter")
	}
}

func TestNew_WhiteEnabledWithoutLevel(t *testing.T) {
	c, err := New(Input{Red: Value(255), Green: Value(0), Blue: Value(0), WhiteEnabled: true})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Representation() != RepresentationRGBW {
		t.Errorf("Representation() = %v, want RGBW", c.Representation())
	}
	if _, ok := c.White(); ok {
		t.Error("expected white level to be undefined")
	}
	if got := c.Encode(); got != "cff000000" {
		t.Errorf("Encode() = %q, want %q", got, "cff000000")
	}
}

func TestNewHSI_DerivesRGB(t *testing.T) {
	c := NewHSI(120, 1, 1, false)
	if !approx(c.Red(), 0, 0.001) || !approx(c.Green(), 255, 0.001) || !approx(c.Blue(), 0, 0.001) {
		t.Errorf("RGB = (%v, %v, %v), want (0, 255, 0)", c.Red(), c.Green(), c.Blue())
	}
	if c.Representation() != RepresentationHSI {
		t.Errorf("Representation() = %v, want HSI", c.Representation())
	}
}

func TestNewHSI_WhiteEnabled(t *testing.T) {
	c := NewHSI(0, 0.5, 1, true)
	w, ok := c.White()
	if !ok || !approx(w, 127.5, 0.001) {
		t.Errorf("White() = (%v, %v), want (127.5, true)", w, ok)
	}
	if !approx(c.Red(), 127.5, 0.001) {
		t.Errorf("Red() = %v, want 127.5", c.Red())
	}
	if got := c.EncodeAs(RepresentationRGBW); got != "c7f00007f" {
		t.Errorf("EncodeAs(RGBW) = %q, want %q", got, "c7f00007f")
	}
}

func TestSetters_ResyncHSI(t *testing.T) {
	c := NewRGB(255, 0, 0)
	c.SetGreen(255)

	if !approx(c.Hue(), 60, 1e-9) {
		t.Errorf("Hue() = %v, want 60", c.Hue())
	}
	if !approx(c.Intensity(), 2, 1e-9) {
		t.Errorf("Intensity() = %v, want 2", c.Intensity())
	}

	c.SetRed(0)
	c.SetBlue(255)
	if !approx(c.Hue(), 180, 1e-9) {
		t.Errorf("Hue() = %v, want 180", c.Hue())
	}
	if c.Representation() != RepresentationRGB {
		t.Errorf("Representation() = %v, want RGB", c.Representation())
	}
}

func TestSetters_ResyncRGB(t *testing.T) {
	c := NewRGB(255, 0, 0)

	c.SetHue(240)
	if c.Representation() != RepresentationHSI {
		t.Errorf("Representation() = %v, want HSI", c.Representation())
	}
	if !approx(c.Blue(), 255, 0.001) || !approx(c.Red(), 0, 0.001) {
		t.Errorf("RGB = (%v, %v, %v), want (0, 0, 255)", c.Red(), c.Green(), c.Blue())
	}

	c.SetSaturation(0)
	if !approx(c.Red(), 85, 0.001) || !approx(c.Green(), 85, 0.001) || !approx(c.Blue(), 85, 0.001) {
		t.Errorf("RGB = (%v, %v, %v), want (85, 85, 85)", c.Red(), c.Green(), c.Blue())
	}

	c.SetIntensity(3)
	if !approx(c.Red(), 255, 0.001) {
		t.Errorf("Red() = %v, want 255", c.Red())
	}
}

func TestSetWhite(t *testing.T) {
	c := NewRGBW(255, 0, 0, 0)
	if err := c.SetWhite(255); err != nil {
		t.Fatalf("SetWhite() error = %v", err)
	}
	if !approx(c.Saturation(), 0.5, 1e-9) {
		t.Errorf("Saturation() = %v, want 0.5", c.Saturation())
	}
	if !approx(c.Intensity(), 2, 1e-9) {
		t.Errorf("Intensity() = %v, want 2", c.Intensity())
	}

	c.ClearWhite()
	if _, ok := c.White(); ok {
		t.Error("expected white level to be cleared")
	}
	if !approx(c.Intensity(), 1, 1e-9) {
		t.Errorf("Intensity() = %v, want 1", c.Intensity())
	}
}

func TestSetWhite_NotEnabled(t *testing.T) {
	c := NewRGB(10, 20, 30)
	before := c

	err := c.SetWhite(100)
	if !errors.Is(err, ErrWhiteNotEnabled) {
		t.Fatalf("SetWhite() error = %v, want ErrWhiteNotEnabled", err)
	}
	if c != before {
		t.Errorf("color modified by rejected SetWhite: %+v, want %+v", c, before)
	}
	if got := c.Encode(); got != "c0a141e" {
		t.Errorf("Encode() = %q, want %q", got, "c0a141e")
	}
}

func TestCopyAs(t *testing.T) {
	c := NewRGBW(255, 0, 0, 51)

	rgb := c.CopyAs(RepresentationRGB)
	if rgb.WhiteEnabled() {
		t.Error("RGB copy should not drive a white emitter")
	}
	if got := rgb.Encode(); got != "cff0000" {
		t.Errorf("RGB copy Encode() = %q, want %q", got, "cff0000")
	}

	rgbw := c.CopyAs(RepresentationRGBW)
	if got := rgbw.Encode(); got != "cff000033" {
		t.Errorf("RGBW copy Encode() = %q, want %q", got, "cff000033")
	}

	hsiCopy := c.CopyAs(RepresentationHSI)
	if hsiCopy.Representation() != RepresentationHSI {
		t.Errorf("HSI copy Representation() = %v, want HSI", hsiCopy.Representation())
	}
	if got, want := hsiCopy.Encode(), c.EncodeAs(RepresentationHSI); got != want {
		t.Errorf("HSI copy Encode() = %q, want %q", got, want)
	}

	same := c.Copy()
	if !same.Equal(c) {
		t.Errorf("Copy() = %v, want %v", same, c)
	}
}

func TestCopy_IsIndependent(t *testing.T) {
	c := NewRGB(1, 2, 3)
	cp := c.Copy()
	cp.SetRed(200)

	if c.Red() != 1 {
		t.Errorf("original Red() = %v after mutating copy, want 1", c.Red())
	}
}

func TestEqual_UsesEncoding(t *testing.T) {
	a := NewHSI(0, 1, 1, false)
	b := NewHSI(720, 1, 1, false)
	if !a.Equal(b) {
		t.Errorf("%v should equal %v", a, b)
	}

	full := NewHSI(FullCircle, 1, 1, false)
	if a.Equal(full) {
		t.Errorf("%v should not equal %v", a, full)
	}

	withWhite := NewHSI(0, 1, 1, true)
	if a.Equal(withWhite) {
		t.Errorf("%v should not equal %v", a, withWhite)
	}
}

func TestZeroValue(t *testing.T) {
	var c Color
	if got := c.Encode(); got != "c000000" {
		t.Errorf("Encode() = %q, want %q", got, "c000000")
	}
}
