package colour

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		wantErr bool
	}{
		{"black", 0, 0, 0, false},
		{"white", 1, 1, 1, false},
		{"mid grey", 0.5, 0.5, 0.5, false},
		{"channel boundaries", 0, 0.5, 1, false},
		{"negative channel", -0.1, 0, 0, true},
		{"channel above one", 0, 1.1, 0, true},
		{"NaN channel", math.NaN(), 0, 0, true},
		{"infinite channel", 0, 0, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.r, tt.g, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("New(%v, %v, %v) expected error, got none", tt.r, tt.g, tt.b)
				}
				if !errors.Is(err, ErrInvalidColour) {
					t.Errorf("New() error = %v, want ErrInvalidColour", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%v, %v, %v) unexpected error: %v", tt.r, tt.g, tt.b, err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("New() = %+v, want {%v %v %v}", c, tt.r, tt.g, tt.b)
			}
		})
	}
}

func TestFrom8Bit(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Colour
	}{
		{"black", 0, 0, 0, Colour{0, 0, 0}},
		{"white", 255, 255, 255, Colour{1, 1, 1}},
		{"pure red", 255, 0, 0, Colour{1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := From8Bit(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("From8Bit(%d, %d, %d) = %+v, want %+v", tt.r, tt.g, tt.b, got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("From8Bit() produced invalid colour: %v", err)
			}
		})
	}
}

func TestFromStdColor(t *testing.T) {
	// 8-bit values must round-trip exactly through the stdlib colour model.
	values := []uint8{0, 1, 127, 128, 254, 255}
	for _, v := range values {
		src := color.RGBA{R: v, G: v, B: v, A: 255}
		got := FromStdColor(src).RGB8()
		if got.R != v || got.G != v || got.B != v {
			t.Errorf("FromStdColor(%d) round-trip = %+v, want all channels %d", v, got, v)
		}
	}

	// Alpha is discarded, not premultiplied back in.
	opaque := FromStdColor(color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	if opaque.RGB8() != (RGB{R: 200, G: 100, B: 50}) {
		t.Errorf("FromStdColor(opaque NRGBA) = %+v, want rgb(200, 100, 50)", opaque.RGB8())
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{"lowercase", "#d7698b", RGB{215, 105, 139}, false},
		{"uppercase", "#D7698B", RGB{215, 105, 139}, false},
		{"black", "#000000", RGB{0, 0, 0}, false},
		{"white", "#ffffff", RGB{255, 255, 255}, false},
		{"short form", "#abc", RGB{170, 187, 204}, false},
		{"missing hash", "d7698b", RGB{}, true},
		{"too short", "#d769", RGB{}, true},
		{"not hex digits", "#gggggg", RGB{}, true},
		{"empty", "", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error, got none", tt.input)
				}
				if !errors.Is(err, ErrInvalidColour) {
					t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColour", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got := c.RGB8(); got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestColourHex(t *testing.T) {
	tests := []struct {
		name   string
		colour Colour
		want   string
	}{
		{"pink", From8Bit(215, 105, 139), "#d7698b"},
		{"black", Colour{0, 0, 0}, "#000000"},
		{"white", Colour{1, 1, 1}, "#ffffff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.colour.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRGB8RoundTrip(t *testing.T) {
	values := []uint8{0, 1, 127, 128, 254, 255}
	for _, v := range values {
		got := From8Bit(v, v, v).RGB8()
		if got.R != v || got.G != v || got.B != v {
			t.Errorf("RGB8 round-trip of %d = %+v", v, got)
		}
	}
}

func TestStdColor(t *testing.T) {
	c := From8Bit(215, 105, 139)
	r, g, b, a := c.StdColor().RGBA()
	if r>>8 != 215 || g>>8 != 105 || b>>8 != 139 {
		t.Errorf("StdColor() channels = (%d, %d, %d), want (215, 105, 139)", r>>8, g>>8, b>>8)
	}
	if a != 0xffff {
		t.Errorf("StdColor() alpha = %d, want fully opaque", a)
	}
}

func TestRGBString(t *testing.T) {
	rgb := RGB{R: 215, G: 105, B: 139}
	if got := rgb.String(); got != "rgb(215, 105, 139)" {
		t.Errorf("String() = %q, want %q", got, "rgb(215, 105, 139)")
	}
	if got := rgb.Hex(); got != "#d7698b" {
		t.Errorf("Hex() = %q, want %q", got, "#d7698b")
	}
}

func TestRGBColourRoundTrip(t *testing.T) {
	rgb := RGB{R: 12, G: 200, B: 99}
	if got := rgb.Colour().RGB8(); got != rgb {
		t.Errorf("Colour().RGB8() = %+v, want %+v", got, rgb)
	}
}
