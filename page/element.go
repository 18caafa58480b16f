package page

import (
	"github.com/PuerkitoBio/goquery"
)

// Element is a node of a Document resolved by ElementByID
type Element struct {
	doc *Document
	sel *goquery.Selection
}

// ID returns the element id
func (e *Element) ID() string {
	v, _ := e.sel.Attr("id")
	return v
}

// AppendHTML appends markup after the element's existing children
func (e *Element) AppendHTML(markup string) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.sel.AppendHtml(markup)
}

// ReplaceOrAppend replaces the descendants matching selector with markup,
// or appends markup when nothing matches. It reports whether a replacement
// took place.
func (e *Element) ReplaceOrAppend(selector, markup string) bool {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	existing := e.sel.Find(selector)
	if existing.Length() == 0 {
		e.sel.AppendHtml(markup)
		return false
	}

	existing.First().ReplaceWithHtml(markup)
	existing.Slice(1, existing.Length()).Remove()
	return true
}

// InnerHTML returns the serialized children of the element
func (e *Element) InnerHTML() (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.sel.Html()
}

// Count returns the number of descendants matching selector
func (e *Element) Count(selector string) int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	return e.sel.Find(selector).Length()
}

// Remove deletes the descendants matching selector and returns how many were removed
func (e *Element) Remove(selector string) int {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	matched := e.sel.Find(selector)
	n := matched.Length()
	matched.Remove()
	return n
}
