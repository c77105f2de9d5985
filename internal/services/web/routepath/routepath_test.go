package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/up" {
		t.Fatalf("Health = %q", Health)
	}
	if AssetPrefix != "/api/asset/" {
		t.Fatalf("AssetPrefix = %q", AssetPrefix)
	}
	if AssetPattern != "GET /api/asset/{path...}" {
		t.Fatalf("AssetPattern = %q", AssetPattern)
	}
}

func TestItemEscapesID(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"kovacs":      "/kovacs",
		" kovacs ":    "/kovacs",
		"crime scene": "/crime%20scene",
		"":            "/",
	}
	for id, want := range cases {
		if got := Item(id); got != want {
			t.Fatalf("Item(%q) = %q, want %q", id, got, want)
		}
	}
	if got := AssetItem("a/b"); got != "/api/assets/a%2Fb" {
		t.Fatalf("AssetItem = %q", got)
	}
}

func TestSoundRoutes(t *testing.T) {
	t.Parallel()

	if got := Sound("click"); got != "/api/sfx/click.wav" {
		t.Fatalf("Sound(click) = %q", got)
	}
	if name, ok := SoundCue("boot.wav"); !ok || name != "boot" {
		t.Fatalf("SoundCue(boot.wav) = %q, %v", name, ok)
	}
	for _, segment := range []string{"boot", ".wav", "boot.mp3"} {
		if _, ok := SoundCue(segment); ok {
			t.Fatalf("SoundCue(%q) ok = true", segment)
		}
	}
}
