package wordpress

import (
	"reflect"
	"testing"
)

func TestRewriteImageURLs(t *testing.T) {
	base := "https://cms.genego.ch"
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "root relative",
			in:   `<img src="/wp-content/uploads/a.jpg">`,
			want: `<img src="https://cms.genego.ch/wp-content/uploads/a.jpg">`,
		},
		{
			name: "path relative",
			in:   `<img src="wp-content/uploads/a.jpg">`,
			want: `<img src="https://cms.genego.ch/wp-content/uploads/a.jpg">`,
		},
		{
			name: "single quotes kept",
			in:   `<img src='/a.jpg'>`,
			want: `<img src='https://cms.genego.ch/a.jpg'>`,
		},
		{
			name: "absolute untouched",
			in:   `<img src="https://cdn.example.com/a.jpg"><img src="HTTP://x/b.png">`,
			want: `<img src="https://cdn.example.com/a.jpg"><img src="HTTP://x/b.png">`,
		},
		{
			name: "protocol relative and data untouched",
			in:   `<img src="//cdn.example.com/a.jpg"><img src="data:image/png;base64,AAAA">`,
			want: `<img src="//cdn.example.com/a.jpg"><img src="data:image/png;base64,AAAA">`,
		},
		{
			name: "srcset descriptors preserved",
			in:   `<img srcset="/a-300.jpg 300w, /a-600.jpg 600w, https://x.ch/a.jpg 2x">`,
			want: `<img srcset="https://cms.genego.ch/a-300.jpg 300w, https://cms.genego.ch/a-600.jpg 600w, https://x.ch/a.jpg 2x">`,
		},
		{
			name: "src and srcset together",
			in:   `<img src="/a.jpg" srcset="b.jpg 1x">`,
			want: `<img src="https://cms.genego.ch/a.jpg" srcset="https://cms.genego.ch/b.jpg 1x">`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RewriteImageURLs(tc.in, base); got != tc.want {
				t.Fatalf("got  %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestRewriteImageURLsIsIdempotent(t *testing.T) {
	in := `<figure><img src="/a.jpg" srcset="/a-1.jpg 1x, a-2.jpg 2x" alt="x"></figure>`
	once := RewriteImageURLs(in, "https://cms.genego.ch/")
	twice := RewriteImageURLs(once, "https://cms.genego.ch/")
	if once != twice {
		t.Fatalf("second pass changed markup:\n%s\n%s", once, twice)
	}
}

func TestRewriteImageURLsNoBase(t *testing.T) {
	in := `<img src="/a.jpg">`
	if got := RewriteImageURLs(in, ""); got != in {
		t.Fatalf("expected unchanged markup, got %s", got)
	}
}

func TestExtractParagraphs(t *testing.T) {
	got := ExtractParagraphs("<h2>Titel</h2><p>Erster  Absatz</p>\n<p> </p><p>Zweiter <strong>Absatz</strong></p>")
	want := []string{"Erster Absatz", "Zweiter Absatz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractParagraphs = %#v", got)
	}

	if got := ExtractParagraphs("nur Text"); !reflect.DeepEqual(got, []string{"nur Text"}) {
		t.Fatalf("plain text = %#v", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags("<p>Hallo <em>Welt</em></p>\n<p>!</p>"); got != "Hallo Welt !" {
		t.Fatalf("StripTags = %q", got)
	}
}
