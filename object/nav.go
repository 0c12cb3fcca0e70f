package object

// Narrow-then-rewrap accessors. Each As* function extracts (value, true)
// if o's shape matches, or (zero, false) otherwise — the "read" half of
// a lens pair, with explicit (T, bool) results instead of silently-zero
// returns, so navigation failures are visible to callers that care and
// ignorable to ones that don't.

// AsNumber narrows o to a Number.
func AsNumber(o Object) (Number, bool) {
	n, ok := o.data.(Number)
	return n, ok
}

// AsBool narrows o to a bool.
func AsBool(o Object) (bool, bool) {
	b, ok := o.data.(bool)
	return b, ok
}

// AsName narrows o to a Name.
func AsName(o Object) (Name, bool) {
	n, ok := o.data.(Name)
	return n, ok
}

// AsDictionary narrows o to a Dictionary. A Stream's header dictionary
// also satisfies this, since streams are dictionary-like everywhere
// except their trailing byte data.
func AsDictionary(o Object) (Dictionary, bool) {
	if d, ok := o.data.(Dictionary); ok {
		return d, true
	}
	if s, ok := o.data.(Stream); ok {
		return s.Dict, true
	}
	return nil, false
}

// AsArray narrows o to an Array.
func AsArray(o Object) (Array, bool) {
	a, ok := o.data.(Array)
	return a, ok
}

// AsBytes narrows o to Bytes.
func AsBytes(o Object) (Bytes, bool) {
	b, ok := o.data.(Bytes)
	return b, ok
}

// AsReference narrows o to a Reference.
func AsReference(o Object) (Reference, bool) {
	r, ok := o.data.(Reference)
	return r, ok
}

// AsStream narrows o to a Stream.
func AsStream(o Object) (Stream, bool) {
	s, ok := o.data.(Stream)
	return s, ok
}

// DictKey narrows o to a dictionary (or stream) and looks up key. It
// returns Null, false if o is not dictionary-shaped or key is absent.
func DictKey(o Object, key Name) (Object, bool) {
	d, ok := AsDictionary(o)
	if !ok {
		return Nil, false
	}
	v, ok := d[key]
	return v, ok
}

// Nth narrows o to an array and returns its i'th element. It returns
// Null, false if o is not an array or i is out of bounds.
func Nth(o Object, i int) (Object, bool) {
	a, ok := AsArray(o)
	if !ok || i < 0 || i >= len(a) {
		return Nil, false
	}
	return a[i], true
}

// WithDictKey applies fn to the value at key in dictionary-shaped o and
// returns a copy of o with that key replaced, leaving o unchanged if it
// is not dictionary-shaped or key is absent — the functorial-update
// half of a lens pair. The original Dictionary map is not mutated; a
// shallow copy is returned.
func WithDictKey(o Object, key Name, fn func(Object) Object) Object {
	d, ok := AsDictionary(o)
	if !ok {
		return o
	}
	v, ok := d[key]
	if !ok {
		return o
	}
	next := make(Dictionary, len(d))
	for k, val := range d {
		next[k] = val
	}
	next[key] = fn(v)
	if s, ok := o.data.(Stream); ok {
		s.Dict = next
		return FromStream(s)
	}
	return FromDictionary(next)
}

// WithNth applies fn to the i'th element of array-shaped o and returns a
// copy of o with that element replaced, leaving o unchanged if it is not
// an array or i is out of bounds.
func WithNth(o Object, i int, fn func(Object) Object) Object {
	a, ok := AsArray(o)
	if !ok || i < 0 || i >= len(a) {
		return o
	}
	next := make(Array, len(a))
	copy(next, a)
	next[i] = fn(next[i])
	return FromArray(next)
}
