package highlight

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-promptgen/pkg/config"
	"github.com/goliatone/go-promptgen/pkg/generator"
	"github.com/goliatone/go-promptgen/pkg/model"
	"github.com/goliatone/go-promptgen/pkg/render"
	"github.com/goliatone/go-promptgen/pkg/testsupport"
)

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<a href="x">Tom & Jerry's</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#039;s&lt;/a&gt;"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestJSON_HighlightsTokens(t *testing.T) {
	doc := "{\n  \"name\": \"Sofa <b>\",\n  \"count\": -1.5e3,\n  \"ok\": true,\n  \"none\": null\n}"
	got := JSON(doc)
	want := "{\n" +
		`  <span class="json-key">&quot;name&quot;</span>: <span class="json-string">&quot;Sofa &lt;b&gt;&quot;</span>,` + "\n" +
		`  <span class="json-key">&quot;count&quot;</span>: <span class="json-number">-1.5e3</span>,` + "\n" +
		`  <span class="json-key">&quot;ok&quot;</span>: <span class="json-boolean">true</span>,` + "\n" +
		`  <span class="json-key">&quot;none&quot;</span>: <span class="json-null">null</span>` + "\n" +
		"}"
	if got != want {
		t.Fatalf("highlight mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestJSON_EscapedQuotesAndNumbersInsideStrings(t *testing.T) {
	got := JSON(`{"k": "say \"true\" 42 null"}`)
	if strings.Contains(got, "json-boolean") || strings.Contains(got, "json-number") || strings.Contains(got, "json-null") {
		t.Fatalf("tokens inside strings should not be highlighted: %s", got)
	}
	if !strings.Contains(got, `<span class="json-string">&quot;say \&quot;true\&quot; 42 null&quot;</span>`) {
		t.Fatalf("unexpected string highlighting: %s", got)
	}
}

func TestText_WrapsSubstitutionsAndEscapes(t *testing.T) {
	segments := generator.Compile([]string{"style", "odd name"}).Segments(
		"A <style> & <unknown>\n<odd name>",
		map[string]string{"style": `<Modern "x">`, "odd name": "v"},
	)
	got := Text(segments)
	want := `A <span class="var-style">&lt;Modern &quot;x&quot;&gt;</span> &amp; &lt;unknown&gt;<br><span class="var-odd-name">v</span>`
	if got != want {
		t.Fatalf("text mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestFragments_DefaultOutputMatchGolden(t *testing.T) {
	out := testsupport.DefaultOutput(t)

	jsonHTML, err := Fragment(out, render.ViewJSON)
	if err != nil {
		t.Fatalf("json fragment: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "default_record.golden"), jsonHTML)

	textHTML, err := Fragment(out, render.ViewText)
	if err != nil {
		t.Fatalf("text fragment: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "default_text.golden"), textHTML)
}

func TestSanitize_StripsForeignMarkup(t *testing.T) {
	got := Sanitize(`<span class="json-key">k</span><script>alert(1)</script><span class="evil" onclick="x()">v</span><br>`)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") || strings.Contains(got, "evil") {
		t.Fatalf("sanitizer kept foreign markup: %s", got)
	}
	if !strings.Contains(got, `<span class="json-key">k</span>`) || !strings.Contains(got, "<br") {
		t.Fatalf("sanitizer dropped allowed markup: %s", got)
	}
}

func TestRenderer_RenderViews(t *testing.T) {
	cfg := config.Default()
	fields := model.FromConfig(cfg)
	fields.Set("style", `Modern<script>`)
	out, err := generator.New(cfg).Generate(fields)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	renderer := New()
	jsonHTML, err := renderer.Render(context.Background(), out, render.RenderOptions{View: render.ViewJSON})
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !strings.Contains(string(jsonHTML), `<span class="json-key">`) || strings.Contains(string(jsonHTML), "<script>") {
		t.Fatalf("unexpected json fragment: %s", jsonHTML)
	}

	textHTML, err := renderer.Render(context.Background(), out, render.RenderOptions{View: render.ViewText})
	if err != nil {
		t.Fatalf("render text: %v", err)
	}
	if !strings.Contains(string(textHTML), `<span class="var-style">`) || strings.Contains(string(textHTML), "<script>") {
		t.Fatalf("unexpected text fragment: %s", textHTML)
	}
	if !strings.Contains(string(textHTML), "<br") {
		t.Fatalf("expected line breaks in text fragment")
	}

	if _, err := renderer.Render(context.Background(), generator.Output{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for empty document")
	}
	safe, _ := render.Safe(renderer).Render(context.Background(), generator.Output{}, render.RenderOptions{})
	if string(safe) != render.JSONPlaceholder {
		t.Fatalf("expected JSON placeholder, got %q", safe)
	}
}
