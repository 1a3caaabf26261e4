package route

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/", "/"},
		{"///", "/"},
		{"/blog", "/blog"},
		{"/blog/", "/blog"},
		{"/blog///", "/blog"},
		{"/podcast/ep1/", "/podcast/ep1"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Page
	}{
		{"/", Home},
		{"/blog", Blog},
		{"/blog/", Blog},
		{"/blog///", Blog},
		{"/blog/embrace-failure", Post},
		{"/podcast", Podcast},
		{"/podcast/4rOoJ6Egrf8K2IrywzwOMk", Episode},
		{"/projects", Projects},
		{"/projects/", Projects},
		{"/unknown", Home},
		{"/blogs", Home},
		{"", Home},
	}
	for _, tt := range tests {
		if got := Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseDecodesID(t *testing.T) {
	in := Parse("/blog/hello%20world")
	if in.Page != Post || in.ID != "hello world" {
		t.Fatalf("Parse = %+v", in)
	}

	// Invalid escapes keep the raw id.
	in = Parse("/podcast/bad%zz")
	if in.Page != Episode || in.ID != "bad%zz" {
		t.Fatalf("Parse = %+v", in)
	}
}

func TestResolveStableUnderCanonicalPath(t *testing.T) {
	paths := []string{
		"", "/", "/blog", "/blog/", "/blog/a", "/blog/a/b", "/blog/%2F",
		"/podcast", "/podcast/x%zz", "/projects///", "/nope", "/blog/hello%20world",
	}
	for _, p := range paths {
		page := Resolve(p)
		if got := Resolve(Parse(p).Path()); got != page {
			t.Errorf("Resolve(Parse(%q).Path()) = %q, want %q", p, got, page)
		}
		if got := Resolve(PagePath(page)); got != ListPage(page) {
			t.Errorf("Resolve(PagePath(%q)) = %q", page, got)
		}
		in := Parse(p)
		if back := Parse(in.Path()); back != in {
			t.Errorf("Parse(%q).Path() round trip = %+v, want %+v", p, back, in)
		}
	}
}

func TestNavActive(t *testing.T) {
	tests := []struct {
		link string
		page Page
		want bool
	}{
		{"/blog", Post, true},
		{"/blog", Blog, true},
		{"/blog", Podcast, false},
		{"/podcast", Episode, true},
		{"/", Home, true},
		{"/", Blog, false},
		{"/projects/", Projects, true},
	}
	for _, tt := range tests {
		if got := NavActive(tt.link, tt.page); got != tt.want {
			t.Errorf("NavActive(%q, %q) = %v, want %v", tt.link, tt.page, got, tt.want)
		}
	}
}
