package markup

import "testing"

func TestRenderPlain(t *testing.T) {
	got := Render("Hours slept")
	if got.Text != "Hours slept" {
		t.Errorf("Text = %q, want %q", got.Text, "Hours slept")
	}
	if len(got.Links) != 0 {
		t.Errorf("Links = %v, want none", got.Links)
	}
}

func TestRenderLink(t *testing.T) {
	got := Render("[Habitica](https://habitica.com) dailies")
	if got.Text != "Habitica dailies" {
		t.Errorf("Text = %q, want %q", got.Text, "Habitica dailies")
	}
	if len(got.Links) != 1 {
		t.Fatalf("Links = %v, want one", got.Links)
	}
	l := got.Links[0]
	if l.Text != "Habitica" || l.URL != "https://habitica.com" {
		t.Errorf("link = %+v", l)
	}
	if !l.NewTab {
		t.Error("NewTab = false, want true")
	}
}

func TestRenderDropsUnsafeScheme(t *testing.T) {
	got := Render("[click](javascript:alert(1))")
	if got.Text != "click" {
		t.Errorf("Text = %q, want %q", got.Text, "click")
	}
	if len(got.Links) != 0 {
		t.Errorf("Links = %v, want none", got.Links)
	}
}

func TestRenderStripsHTML(t *testing.T) {
	got := Render(`<script>alert(1)</script>Mood <b>today</b>`)
	if got.Text != "alert(1)Mood today" {
		t.Errorf("Text = %q", got.Text)
	}
}

func TestRenderUnterminatedTag(t *testing.T) {
	got := Render("Mood <img src=x onerror=alert(1)")
	if got.Text != "Mood " {
		t.Errorf("Text = %q, want %q", got.Text, "Mood ")
	}
}

func TestRenderEmphasisDropped(t *testing.T) {
	got := Render("*Sleep* _quality_")
	if got.Text != "Sleep quality" {
		t.Errorf("Text = %q, want %q", got.Text, "Sleep quality")
	}
}

func TestRenderMalformedLinkLiteral(t *testing.T) {
	got := Render("[not a link")
	if got.Text != "[not a link" {
		t.Errorf("Text = %q, want literal passthrough", got.Text)
	}
}
