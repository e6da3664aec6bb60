package vkc

import "reflect"

// Scope releases the objects added to it in reverse order of addition. The zero
// value is ready to use.
//
// Builders in this package use a Scope so that a failure half way through
// construction destroys whatever was created, and applications can use one for
// teardown so that destruction order follows creation order:
//
//	scope := &Scope{}
//	defer scope.Release()
type Scope struct {
	items []Destroyer
}

// Add pushes d onto the scope and returns it. Nil values are ignored, including nil
// pointers such as the result of a failed create.
func (s *Scope) Add(d Destroyer) Destroyer {
	if !isNil(d) {
		s.items = append(s.items, d)
	}
	return d
}

func isNil(d Destroyer) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// AddFunc pushes a plain release function onto the scope.
func (s *Scope) AddFunc(f func()) {
	if f != nil {
		s.items = append(s.items, destroyFunc(f))
	}
}

// Len returns the number of objects waiting to be released.
func (s *Scope) Len() int {
	return len(s.items)
}

// Release destroys everything in the scope, last added first, and empties it.
// Calling Release on an empty scope does nothing.
func (s *Scope) Release() {
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Destroy()
		s.items[i] = nil
	}
	s.items = s.items[:0]
}

// Forget empties the scope without destroying anything, handing ownership of its
// contents back to the caller. Builders call it once construction has succeeded.
func (s *Scope) Forget() {
	s.items = s.items[:0]
}

type destroyFunc func()

func (f destroyFunc) Destroy() { f() }
