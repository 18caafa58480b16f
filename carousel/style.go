package carousel

import (
	"github.com/s0up4200/trendcarousel/page"
)

const stylesheet = `
.swiper {
  width: 100%;
  padding-top: 50px;
  padding-bottom: 50px;
}

.swiper-slide {
  background-position: center;
  background-size: cover;
  max-width: 250px;
  height: auto;
}

.movie-container {
  padding: .25rem;
  border: 1px solid #000;
  border-radius: 5px;
  background-color: #fff;
}

.movie-container .movie-info p {
  margin: 0;
  margin-bottom: 10px;
}

.movie-container .movie-poster img {
  width: 100%;
  height: auto;
  border-radius: 5px;
}
`

const styleSelector = "style[data-carousel-style]"

// InjectStyles appends the carousel stylesheet to the document head once.
// It reports whether the style block was added by this call.
func InjectStyles(doc *page.Document) (bool, error) {
	return doc.AppendHeadOnce(styleSelector, `<style data-carousel-style="">`+stylesheet+`</style>`)
}
