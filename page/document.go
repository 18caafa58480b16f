// Package page holds the host HTML document the carousel is injected into.
//
// A Document wraps a goquery tree behind a mutex so that several widgets can
// mutate the same page. Mutations are append-only except for the explicit
// replace helpers used to re-render a carousel in place.
package page

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoHead is returned when a document has no head element to append to
var ErrNoHead = errors.New("document has no head element")

// Document is a mutable HTML page
type Document struct {
	mu  sync.Mutex
	doc *goquery.Document
}

// Parse reads an HTML page. Missing html, head and body elements are synthesized.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse for in-memory markup
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Blank builds a minimal page with one empty div per placement id
func Blank(title string, placementIDs ...string) *Document {
	var body strings.Builder
	for _, id := range placementIDs {
		fmt.Fprintf(&body, `<div id="%s"></div>`, html.EscapeString(id))
	}

	markup := fmt.Sprintf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>%s</title></head><body>%s</body></html>`,
		html.EscapeString(title), body.String())

	// The markup is generated above and always parses.
	d, _ := ParseString(markup)
	return d
}

// AppendHead appends markup to the head element
func (d *Document) AppendHead(markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	head := d.doc.Find("head").First()
	if head.Length() == 0 {
		return ErrNoHead
	}
	head.AppendHtml(markup)
	return nil
}

// AppendHeadOnce appends markup to the head unless an element matching
// selector is already present. It reports whether markup was appended.
func (d *Document) AppendHeadOnce(selector, markup string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	head := d.doc.Find("head").First()
	if head.Length() == 0 {
		return false, ErrNoHead
	}
	if head.Find(selector).Length() > 0 {
		return false, nil
	}
	head.AppendHtml(markup)
	return true, nil
}

// Count returns the number of elements matching selector
func (d *Document) Count(selector string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Find(selector).Length()
}

// Attr returns the attribute of the first element matching selector
func (d *Document) Attr(selector, name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Find(selector).First().Attr(name)
}

// Text returns the combined text of the elements matching selector
func (d *Document) Text(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.doc.Find(selector).Text()
}

// ElementByID looks up an element by its id attribute. It returns nil when
// no element carries the id. Ids are compared verbatim, no selector escaping
// is involved.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Element{doc: d, sel: sel}
}

// HTML serializes the whole page
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Render writes the serialized page to w
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	markup, err := d.doc.Html()
	d.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	_, err = io.WriteString(w, markup)
	return err
}
