// Package dom is a minimal in-memory visual tree for hosting the overlay:
// elements with an inline style, an optional bitmap, and ordered children.
package dom

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"
)

var (
	ErrNilElement = errors.New("nil element")
	ErrNotChild   = errors.New("element is not a child")
	ErrHierarchy  = errors.New("element cannot contain itself")
)

type Element struct {
	id    string
	tag   string
	style *Style

	parent   *Element
	children []*Element

	// canvas elements show this bitmap
	image image.Image
}

func NewElement(tag string) *Element {
	return &Element{
		id:    uuid.NewString(),
		tag:   tag,
		style: &Style{},
	}
}

// NewCanvas creates a "canvas" element displaying img.
func NewCanvas(img image.Image) *Element {
	e := NewElement("canvas")
	e.image = img
	return e
}

func (e *Element) ID() string {
	return e.id
}

func (e *Element) Tag() string {
	return e.tag
}

func (e *Element) Style() *Style {
	return e.style
}

func (e *Element) Image() image.Image {
	return e.image
}

func (e *Element) SetImage(img image.Image) {
	e.image = img
}

func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	c := make([]*Element, len(e.children))
	copy(c, e.children)
	return c
}

// Contains reports whether child is a direct child of e.
func (e *Element) Contains(child *Element) bool {
	return child != nil && child.parent == e
}

// AppendChild adds child as the last child of e. A child that already has a
// parent is moved.
func (e *Element) AppendChild(child *Element) error {
	if child == nil {
		return ErrNilElement
	}
	for a := e; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("%w: %s into %s", ErrHierarchy, child, e)
		}
	}

	if child.parent != nil {
		child.parent.unlink(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return nil
}

// RemoveChild detaches child from e.
func (e *Element) RemoveChild(child *Element) error {
	if child == nil {
		return ErrNilElement
	}
	if child.parent != e {
		return fmt.Errorf("%w: %s of %s", ErrNotChild, child, e)
	}

	e.unlink(child)
	child.parent = nil
	return nil
}

func (e *Element) unlink(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return
		}
	}
}

func (e *Element) String() string {
	return fmt.Sprintf("<%s %s>", e.tag, e.id[:8])
}
