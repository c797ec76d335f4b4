package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"hero-Sheet.png", "hero-Sheet.png"},
		{"assets/hero-Sheet.png", "hero-Sheet.png"},
		{"/home/me/game/assets/hero-Sheet.png", "hero-Sheet.png"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEmbeddedSheetPresent(t *testing.T) {
	b, err := readDiskOrEmbedded("hero-Sheet.png")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) < 8 || string(b[1:4]) != "PNG" {
		t.Fatalf("embedded sheet is not a png")
	}
}

func TestImageSize(t *testing.T) {
	w, h, err := ImageSize("hero-Sheet.png")
	if err != nil {
		t.Fatalf("ImageSize: %v", err)
	}
	if w != 128 || h != 128 {
		t.Fatalf("size = %dx%d, want 128x128", w, h)
	}
	if _, _, err := ImageSize("missing.png"); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}
