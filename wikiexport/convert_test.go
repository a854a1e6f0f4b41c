package wikiexport

import (
	"net/url"
	"strings"
	"testing"
)

func TestMarkdownConverter(t *testing.T) {
	base, _ := url.Parse("https://wiki.example.com/w/api.php")
	conv := NewMarkdownConverter(base)

	html := `<div class="mw-parser-output">
<h2><span class="mw-headline" id="Intro">Intro</span><span class="mw-editsection">[<a href="/w/index.php?title=Foo&action=edit">edit</a>]</span></h2>
<p>Hello <b>World</b>, see <a href="/wiki/Foo">Foo</a>.</p>
<div id="toc" class="toc"><ul><li>Contents</li></ul></div>
<style>.x{color:red}</style>
</div>`

	got, err := conv.Convert(html)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	for _, want := range []string{"Intro", "**World**", "https://wiki.example.com/wiki/Foo"} {
		if !strings.Contains(got, want) {
			t.Errorf("markdown missing %q:\n%s", want, got)
		}
	}
	for _, unwanted := range []string{"edit", "Contents", "color:red"} {
		if strings.Contains(got, unwanted) {
			t.Errorf("markdown still contains %q:\n%s", unwanted, got)
		}
	}
}
