package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func servePage(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func longParagraph() string {
	return strings.Repeat("We are hiring a backend engineer with Go and Kubernetes experience. ", 5)
}

func TestGet_Success(t *testing.T) {
	server := servePage(t, http.StatusOK, "<html><body><h1>Test</h1></body></html>")

	result, err := New(nil).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestGet_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "", "://missing-scheme"} {
		t.Run(raw, func(t *testing.T) {
			_, err := New(nil).Get(context.Background(), raw)
			require.Error(t, err)

			var fetchErr *Error
			assert.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestGet_HTTPError(t *testing.T) {
	server := servePage(t, http.StatusNotFound, "")

	result, err := New(nil).Get(context.Background(), server.URL)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_SendsHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	f := New(&Options{Headers: map[string]string{"Accept-Language": "en-US"}})
	_, err := f.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "en-US", gotLang)
}

func TestGet_ContextCanceled(t *testing.T) {
	server := servePage(t, http.StatusOK, "ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Get(ctx, server.URL)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchCleanText_StripsNoise(t *testing.T) {
	page := `<html><head><title>Job</title><style>.x{color:red}</style></head>
	<body>
		<header>Site header</header>
		<nav>Home | Jobs</nav>
		<main><h1>Backend Engineer</h1><p>` + longParagraph() + `</p></main>
		<aside>Related jobs</aside>
		<script>var tracking = true;</script>
		<footer>Copyright</footer>
	</body></html>`
	server := servePage(t, http.StatusOK, page)

	text, err := New(nil).FetchCleanText(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer We are hiring")
	for _, noise := range []string{"Site header", "Home | Jobs", "Related jobs", "tracking", "Copyright", "color:red"} {
		assert.NotContains(t, text, noise)
	}
	assert.NotContains(t, text, "  ")
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestFetchCleanText_TooShort(t *testing.T) {
	server := servePage(t, http.StatusOK, "<html><body><p>Access denied</p><script>lots of script text that does not count toward anything at all really</script></body></html>")

	_, err := New(nil).FetchCleanText(context.Background(), server.URL)
	require.Error(t, err)

	var shortErr *ContentTooShortError
	require.ErrorAs(t, err, &shortErr)
	assert.Equal(t, len("Access denied"), shortErr.Length)
	assert.Equal(t, server.URL, shortErr.URL)
}

func TestFetchCleanText_Truncates(t *testing.T) {
	body := "<html><body><p>" + strings.Repeat("é word ", 2000) + "</p></body></html>"
	server := servePage(t, http.StatusOK, body)

	text, err := New(nil).FetchCleanText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, MaxContentLength, utf8.RuneCountInString(text))
	assert.True(t, utf8.ValidString(text))
}

func TestFetchCleanText_StatusError(t *testing.T) {
	server := servePage(t, http.StatusForbidden, "<html><body>"+longParagraph()+"</body></html>")

	_, err := New(nil).FetchCleanText(context.Background(), server.URL)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
}

func TestExtractVisibleText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "adjacent elements keep a separator",
			html: "<div><h1>Title</h1><p>Body</p></div>",
			want: "Title Body",
		},
		{
			name: "whitespace runs collapse",
			html: "<p>one\n\n\t two   three</p>",
			want: "one two three",
		},
		{
			name: "noscript removed",
			html: "<body><noscript>Enable JS</noscript><p>Kept</p></body>",
			want: "Kept",
		},
		{
			name: "comments ignored",
			html: "<body><!-- hidden --><p>Shown</p></body>",
			want: "Shown",
		},
		{
			name: "empty document",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVisibleText(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "日本", Truncate("日本語", 2))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \n b\t\tc  "))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
}
