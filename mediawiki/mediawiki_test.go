package mediawiki

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSplitScheme(t *testing.T) {
	tests := []struct {
		in, host, scheme string
	}{
		{"wiki.example.com", "wiki.example.com", "https"},
		{"http://wiki.example.com", "wiki.example.com", "http"},
		{"https://wiki.example.com", "wiki.example.com", "https"},
		{"https://wiki.example.com:8443", "wiki.example.com:8443", "https"},
	}

	for _, tt := range tests {
		host, scheme := SplitScheme(tt.in)
		if host != tt.host || scheme != tt.scheme {
			t.Errorf("SplitScheme(%q) = (%q, %q), want (%q, %q)", tt.in, host, scheme, tt.host, tt.scheme)
		}
	}
}

func TestNewAPIEndpoint(t *testing.T) {
	tests := []struct {
		host, path, scheme, want string
	}{
		{"wiki.example.com", "/", "https", "https://wiki.example.com/api.php"},
		{"wiki.example.com", "/w/", "http", "http://wiki.example.com/w/api.php"},
		{"wiki.example.com", "w", "", "https://wiki.example.com/w/api.php"},
		{"wiki.example.com/", "", "https", "https://wiki.example.com/api.php"},
	}

	for _, tt := range tests {
		api, err := NewAPI(tt.host, tt.path, tt.scheme)
		if err != nil {
			t.Fatalf("NewAPI(%q, %q): %v", tt.host, tt.path, err)
		}
		if got := api.Endpoint.String(); got != tt.want {
			t.Errorf("endpoint = %q, want %q", got, tt.want)
		}
	}

	if _, err := NewAPI("", "/", "https"); err == nil {
		t.Error("expected error for empty host")
	}
}

// fakeWiki serves a tiny wiki with the given titles, batchSize pages per allpages response.
type fakeWiki struct {
	titles    []string
	batchSize int
	failText  map[string]bool

	listCalls  int
	loginForms []string
}

func (f *fakeWiki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.loginForms = append(f.loginForms, r.PostForm.Encode())
		if r.PostForm.Get("lgtoken") != "tok+\\" {
			fmt.Fprint(w, `{"login":{"result":"WrongToken"}}`)
			return
		}
		if r.PostForm.Get("lgpassword") != "hunter2" {
			fmt.Fprint(w, `{"login":{"result":"Failed","reason":"Incorrect password"}}`)
			return
		}
		fmt.Fprintf(w, `{"login":{"result":"Success","lguserid":1,"lgusername":%q}}`, r.PostForm.Get("lgname"))
		return
	}

	q := r.URL.Query()
	if q.Get("format") != "json" || q.Get("formatversion") != "2" {
		http.Error(w, "bad format", http.StatusBadRequest)
		return
	}

	switch {
	case q.Get("meta") == "siteinfo":
		fmt.Fprint(w, `{"query":{"general":{"sitename":"Test Wiki","generator":"MediaWiki 1.41.0"}}}`)

	case q.Get("meta") == "tokens":
		fmt.Fprint(w, `{"query":{"tokens":{"logintoken":"tok+\\"}}}`)

	case q.Get("generator") == "allpages":
		f.listCalls++
		start := 0
		if c := q.Get("gapcontinue"); c != "" {
			for i, title := range f.titles {
				if title == c {
					start = i
				}
			}
		}
		end := start + f.batchSize
		if end > len(f.titles) {
			end = len(f.titles)
		}
		pages := []string{}
		// reverse order within a batch, like page-id keyed results can be
		for i := end - 1; i >= start; i-- {
			pages = append(pages, fmt.Sprintf(`{"pageid":%d,"ns":%s,"title":%q,"touched":"2024-01-0%dT00:00:00Z"}`,
				i+1, q.Get("gapnamespace"), f.titles[i], i%9+1))
		}
		cont := ""
		if end < len(f.titles) {
			cont = fmt.Sprintf(`,"continue":{"gapcontinue":%q,"continue":"gapcontinue||"}`, f.titles[end])
		}
		fmt.Fprintf(w, `{"batchcomplete":true%s,"query":{"pages":[%s]}}`, cont, strings.Join(pages, ","))

	case q.Get("prop") == "revisions":
		title := q.Get("titles")
		if f.failText[title] {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		if title == "Nope" {
			fmt.Fprint(w, `{"query":{"pages":[{"ns":0,"title":"Nope","missing":true}]}}`)
			return
		}
		fmt.Fprintf(w, `{"query":{"pages":[{"pageid":1,"ns":0,"title":%q,"revisions":[{"slots":{"main":{"contentmodel":"wikitext","content":"text of %s"}}}]}]}}`, title, title)

	case q.Get("action") == "parse":
		if q.Get("disableeditsection") == "" {
			http.Error(w, "expected disableeditsection", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"parse":{"title":%q,"pageid":1,"text":"<p>Hello <b>%s</b></p>"}}`, q.Get("page"), q.Get("page"))

	default:
		fmt.Fprint(w, `{"error":{"code":"badvalue","info":"unrecognised request"}}`)
	}
}

func newTestAPI(t *testing.T, h http.Handler) *API {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	host, scheme := SplitScheme(srv.URL)
	api, err := NewAPI(host, "/w/", scheme)
	if err != nil {
		t.Fatalf("NewAPI: %v", err)
	}
	return api
}

func TestSiteInfo(t *testing.T) {
	api := newTestAPI(t, &fakeWiki{})

	info, err := api.SiteInfo(context.Background())
	if err != nil {
		t.Fatalf("SiteInfo: %v", err)
	}
	if info.SiteName != "Test Wiki" {
		t.Errorf("sitename = %q", info.SiteName)
	}
}

func TestSiteInfoHTTPError(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := api.SiteInfo(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", statusErr.StatusCode)
	}
}

func TestAllPagesFollowsContinuation(t *testing.T) {
	wiki := &fakeWiki{titles: []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}, batchSize: 2}
	api := newTestAPI(t, wiki)

	it := api.AllPages(0)
	var got []string
	for {
		p, err := it.Next(context.Background())
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if p.Touched == "" {
			t.Errorf("page %q has no touched timestamp", p.Title)
		}
		got = append(got, p.Title)
	}

	if strings.Join(got, ",") != "Alpha,Bravo,Charlie,Delta,Echo" {
		t.Errorf("titles = %v", got)
	}
	if wiki.listCalls != 3 {
		t.Errorf("list calls = %d, want 3", wiki.listCalls)
	}

	// stays exhausted
	if _, err := it.Next(context.Background()); err != io.EOF {
		t.Errorf("expected io.EOF after exhaustion, got %v", err)
	}
}

func TestAllPagesBatchOrderMatchesDBKeys(t *testing.T) {
	// the wiki lists "AB" before "A B" because it compares "AB" with "A_B"
	wiki := &fakeWiki{titles: []string{"AB", "A B", "A C"}, batchSize: 3}
	api := newTestAPI(t, wiki)

	it := api.AllPages(0)
	var got []string
	for {
		p, err := it.Next(context.Background())
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, p.Title)
	}

	if strings.Join(got, "|") != "AB|A B|A C" {
		t.Errorf("titles = %q", got)
	}
}

func TestAllPagesIsLazy(t *testing.T) {
	wiki := &fakeWiki{titles: []string{"A", "B", "C"}, batchSize: 1}
	api := newTestAPI(t, wiki)

	it := api.AllPages(0)
	if wiki.listCalls != 0 {
		t.Fatalf("iterator made %d requests before Next", wiki.listCalls)
	}
	if _, err := it.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if wiki.listCalls != 1 {
		t.Errorf("list calls = %d, want 1", wiki.listCalls)
	}
}

func TestPageHandleContent(t *testing.T) {
	wiki := &fakeWiki{titles: []string{"Good", "Bad"}, batchSize: 10, failText: map[string]bool{"Bad": true}}
	api := newTestAPI(t, wiki)
	ctx := context.Background()

	it := api.AllPages(0)
	bad, _ := it.Next(ctx)
	good, _ := it.Next(ctx)

	text, err := good.Content(ctx)
	if err != nil {
		t.Fatalf("Content: %v", err)
	}
	if text != "text of Good" {
		t.Errorf("text = %q", text)
	}

	if _, err := bad.Content(ctx); err == nil {
		t.Error("expected content fetch of 'Bad' to fail")
	}
}

func TestGetPageTextMissing(t *testing.T) {
	api := newTestAPI(t, &fakeWiki{})

	if _, err := api.GetPageText(context.Background(), "Nope"); err == nil {
		t.Error("expected error for missing page")
	}
}

func TestGetRenderedHTML(t *testing.T) {
	api := newTestAPI(t, &fakeWiki{})

	html, err := api.GetRenderedHTML(context.Background(), "Main Page")
	if err != nil {
		t.Fatalf("GetRenderedHTML: %v", err)
	}
	if html != "<p>Hello <b>Main Page</b></p>" {
		t.Errorf("html = %q", html)
	}
}

func TestLogin(t *testing.T) {
	wiki := &fakeWiki{}
	api := newTestAPI(t, wiki)
	ctx := context.Background()

	if err := api.Login(ctx, "bot", "wrong"); err == nil {
		t.Error("expected login failure with wrong password")
	}
	if err := api.Login(ctx, "bot", "hunter2"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if api.Username != "bot" {
		t.Errorf("username = %q", api.Username)
	}
	if len(wiki.loginForms) != 2 {
		t.Errorf("login posts = %d, want 2", len(wiki.loginForms))
	}
}

func TestAPIErrorEnvelope(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"readapidenied","info":"You need read permission"}}`)
	}))

	_, err := api.GetAllPages(context.Background(), AllPagesQuery{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "readapidenied" {
		t.Errorf("code = %q", apiErr.Code)
	}
}
