package carousel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/s0up4200/trendcarousel/tmdb"
)

func TestSlide(t *testing.T) {
	got := Slide(tmdb.Item{Title: "A", PosterPath: "/a.jpg"})

	assert.Equal(t, `<div class="swiper-slide"><div class="movie-container"><div class="movie-poster">`+
		`<img src="https://image.tmdb.org/t/p/w500//a.jpg" alt="A" title="A"/></div></div></div>`, got)
}

func TestSlideUsesNameForTV(t *testing.T) {
	got := Slide(tmdb.Item{Name: "Severance", PosterPath: "/s.jpg"})
	assert.Contains(t, got, `alt="Severance" title="Severance"`)
}

func TestSlideEscapesExternalStrings(t *testing.T) {
	got := Slide(tmdb.Item{
		Title:      `<script>alert("x")</script> & Co`,
		PosterPath: `/a.jpg" onerror="alert(1)`,
	})

	assert.NotContains(t, got, "<script>")
	assert.NotContains(t, got, `" onerror="`)
	assert.Contains(t, got, `alt="&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; Co"`)
	assert.Contains(t, got, `src="https://image.tmdb.org/t/p/w500//a.jpg&#34; onerror=&#34;alert(1)"`)
}

func TestFragmentPreservesOrder(t *testing.T) {
	items := []tmdb.Item{{Title: "first"}, {Title: "second"}, {Title: "third"}}
	got := Fragment(items)

	assert.Equal(t, 3, strings.Count(got, `class="swiper-slide"`))
	assert.Less(t, strings.Index(got, "first"), strings.Index(got, "second"))
	assert.Less(t, strings.Index(got, "second"), strings.Index(got, "third"))
	assert.Empty(t, Fragment(nil))
}

func TestWrapperID(t *testing.T) {
	assert.Equal(t, "tmdb-carousel-movies", WrapperID("movies"))
	assert.Equal(t, "tmdb-carousel-a-b", WrapperID("a b"))
}

func TestWrap(t *testing.T) {
	assert.Equal(t,
		`<div class="swiper" id="tmdb-carousel-w1" data-carousel="w1"><div class="swiper-wrapper"><i></i></div></div>`,
		Wrap("w1", "<i></i>"))
}
