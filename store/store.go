// Package store holds the ordered set of annotated objects for one image.
// A Store instance is created when detections arrive or when the user
// draws the first box, and discarded when its image is removed.
package store

import (
	"sort"

	"github.com/annolab/go-annotate/geom"
)

// Object is a single annotated object, pairing a class labelled bounding
// box with an optional polygon segment mask
type Object struct {
	// ID is a stable identity assigned by the store, unique for the
	// lifetime of the store
	ID int64
	// Class is the line number in the class labels file defining the
	// object's class
	Class int
	// Box is the bounding box in normalized [0,1] coordinates
	Box geom.Box
	// Mask is the optional segment polygon in absolute pixel space
	Mask geom.Mask
	// Confidence is the detection score in the [0,1] range, manually
	// drawn boxes carry 1.0
	Confidence float64
}

// Store is the ordered object set for the active image.  Visibility and
// selection are keyed by stable object ID rather than slice position, so
// removing an object never requires renumbering hidden entries.  The
// index based accessors below still expose positional semantics to
// callers
type Store struct {
	objects  []Object
	hidden   map[int64]struct{}
	selected int64
	nextID   int64
}

// NewStore creates an empty object set store
func NewStore() *Store {
	return &Store{
		hidden: make(map[int64]struct{}),
	}
}

// allocID returns the next incremental object ID.  IDs start at 1 so the
// zero value can mean no selection
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// inRange reports whether index refers to an existing object
func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.objects)
}

// Len returns the number of objects in the set
func (s *Store) Len() int {
	return len(s.objects)
}

// Add appends a new object with the given geometry and class.  Manually
// drawn boxes are definitionally certain so confidence is 1 and the
// object starts visible.  The new object's index is returned
func (s *Store) Add(box geom.Box, class int, mask geom.Mask) int {

	s.objects = append(s.objects, Object{
		ID:         s.allocID(),
		Class:      class,
		Box:        box,
		Mask:       mask,
		Confidence: 1,
	})

	return len(s.objects) - 1
}

// Replace commits a full detection result as the new object set.  The
// previous contents, hidden set and selection are discarded, a new result
// completely supersedes the prior object set rather than merging with it.
// Fresh IDs are assigned to every object
func (s *Store) Replace(objects []Object) {

	s.objects = make([]Object, 0, len(objects))
	s.hidden = make(map[int64]struct{})
	s.selected = 0

	for _, obj := range objects {
		obj.ID = s.allocID()
		s.objects = append(s.objects, obj)
	}
}

// Update replaces the geometry of the object at index, leaving class,
// confidence and visibility untouched.  Returns false for an out of
// range index
func (s *Store) Update(index int, box geom.Box, mask geom.Mask) bool {

	if !s.inRange(index) {
		return false
	}

	s.objects[index].Box = box
	s.objects[index].Mask = mask

	return true
}

// Remove deletes the object at index.  Objects after it shift down by
// one position, their hidden and selected status travels with them since
// both are keyed by stable ID.  Returns false for an out of range index
func (s *Store) Remove(index int) bool {

	if !s.inRange(index) {
		return false
	}

	id := s.objects[index].ID

	delete(s.hidden, id)

	if s.selected == id {
		s.selected = 0
	}

	s.objects = append(s.objects[:index], s.objects[index+1:]...)

	return true
}

// SetClass changes only the class label of the object at index
func (s *Store) SetClass(index, class int) bool {

	if !s.inRange(index) {
		return false
	}

	s.objects[index].Class = class

	return true
}

// ToggleVisibility flips the hidden state of the object at index.  A
// hidden object can never remain selected, hiding the selected object
// clears the selection
func (s *Store) ToggleVisibility(index int) bool {

	if !s.inRange(index) {
		return false
	}

	id := s.objects[index].ID

	if _, ok := s.hidden[id]; ok {
		delete(s.hidden, id)
		return true
	}

	s.hidden[id] = struct{}{}

	if s.selected == id {
		s.selected = 0
	}

	return true
}

// Visible reports whether the object at index is currently visible.  Out
// of range indices report false
func (s *Store) Visible(index int) bool {

	if !s.inRange(index) {
		return false
	}

	_, ok := s.hidden[s.objects[index].ID]

	return !ok
}

// HiddenIndices returns the positions of all hidden objects in ascending
// order
func (s *Store) HiddenIndices() []int {

	var indices []int

	for i, obj := range s.objects {
		if _, ok := s.hidden[obj.ID]; ok {
			indices = append(indices, i)
		}
	}

	sort.Ints(indices)

	return indices
}

// Select marks the object at index as the current selection.  Hidden
// objects cannot be selected.  Returns false and leaves the selection
// unchanged for an invalid target
func (s *Store) Select(index int) bool {

	if !s.inRange(index) || !s.Visible(index) {
		return false
	}

	s.selected = s.objects[index].ID

	return true
}

// ClearSelection drops the current selection if any
func (s *Store) ClearSelection() {
	s.selected = 0
}

// SelectedIndex returns the position of the selected object, or false
// when nothing is selected
func (s *Store) SelectedIndex() (int, bool) {

	if s.selected == 0 {
		return 0, false
	}

	for i, obj := range s.objects {
		if obj.ID == s.selected {
			return i, true
		}
	}

	return 0, false
}

// IndexOf returns the current position of the object with the given
// stable ID, or false when no such object exists.  The position of an
// object changes when objects before it are removed, so callers holding
// an ID across mutations resolve it through here
func (s *Store) IndexOf(id int64) (int, bool) {

	for i, obj := range s.objects {
		if obj.ID == id {
			return i, true
		}
	}

	return 0, false
}

// Get returns a copy of the object at index
func (s *Store) Get(index int) (Object, bool) {

	if !s.inRange(index) {
		return Object{}, false
	}

	return s.objects[index], true
}

// Objects returns a copy of the full object set in order
func (s *Store) Objects() []Object {

	out := make([]Object, len(s.objects))
	copy(out, s.objects)

	return out
}
