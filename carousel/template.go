package carousel

import (
	"fmt"
	"html"
	"strings"

	"github.com/s0up4200/trendcarousel/tmdb"
)

// ImageBaseURL is the poster host, the item's poster path is appended verbatim
const ImageBaseURL = "https://image.tmdb.org/t/p/w500/"

// PosterURL returns the w500 poster URL of an item
func PosterURL(item tmdb.Item) string {
	return ImageBaseURL + item.PosterPath
}

// Slide renders one item as a swiper slide. Title and poster URL are escaped.
func Slide(item tmdb.Item) string {
	title := html.EscapeString(item.DisplayTitle())
	return fmt.Sprintf(`<div class="swiper-slide"><div class="movie-container"><div class="movie-poster"><img src="%s" alt="%s" title="%s"/></div></div></div>`,
		html.EscapeString(PosterURL(item)), title, title)
}

// Fragment concatenates the slides of items in order
func Fragment(items []tmdb.Item) string {
	var b strings.Builder
	for _, item := range items {
		b.WriteString(Slide(item))
	}
	return b.String()
}

// WrapperIDPrefix namespaces wrapper element ids so they never shadow a
// placement element
const WrapperIDPrefix = "tmdb-carousel-"

// WrapperID returns the DOM id of the wrapper for a widget id
func WrapperID(id string) string {
	return WrapperIDPrefix + sanitizeID(id)
}

// Wrap places a fragment inside the container skeleton the engine expects
func Wrap(id, fragment string) string {
	return fmt.Sprintf(`<div class="swiper" id="%s" data-carousel="%s"><div class="swiper-wrapper">%s</div></div>`,
		html.EscapeString(WrapperID(id)), html.EscapeString(id), fragment)
}

// wrapperSelector matches the wrapper of the widget with the given id. The
// init script binds the engine through it, not through the element id.
func wrapperSelector(id string) string {
	return fmt.Sprintf(`div.swiper[data-carousel="%s"]`, id)
}
