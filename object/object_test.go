package object

import "testing"

func TestNumberEqual(t *testing.T) {
	testCases := map[string]struct {
		a, b Number
		want bool
	}{
		"same integer":       {NewInteger(5), NewInteger(5), true},
		"different integer":  {NewInteger(5), NewInteger(6), false},
		"same real":          {NewReal(1.5), NewReal(1.5), true},
		"integer vs real":    {NewInteger(5), NewReal(5), false},
		"different real":     {NewReal(1.5), NewReal(2.5), false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Fatalf("Equal() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNumberNatural(t *testing.T) {
	if n, ok := NewInteger(7).Natural(); !ok || n != 7 {
		t.Fatalf("NewInteger(7).Natural() = (%d, %v), want (7, true)", n, ok)
	}
	if _, ok := NewReal(7).Natural(); ok {
		t.Fatal("NewReal(7).Natural() = (_, true), want false")
	}
}

func TestBytesTextUTF16BE(t *testing.T) {
	// "Hi" with a UTF-16BE byte-order mark: FE FF 00 48 00 69.
	b := Bytes{0xfe, 0xff, 0x00, 0x48, 0x00, 0x69}
	if got := b.Text(); got != "Hi" {
		t.Fatalf("Text() = %q, want %q", got, "Hi")
	}
}

func TestBytesTextPlain(t *testing.T) {
	b := Bytes("plain ascii")
	if got := b.Text(); got != "plain ascii" {
		t.Fatalf("Text() = %q, want %q", got, "plain ascii")
	}
}

func TestDictionaryKeysSorted(t *testing.T) {
	d := Dictionary{"Zeta": Nil, "Alpha": Nil, "Mu": Nil}
	got := d.Keys()
	want := []Name{"Alpha", "Mu", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

func TestObjectStringRoundTripsShape(t *testing.T) {
	dict := FromDictionary(Dictionary{
		"Count": FromNumber(NewInteger(3)),
		"Type":  FromName("Pages"),
	})
	got := dict.String()
	want := "<</Count 3 /Type /Pages>>"
	if got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestObjectKindAndIsNull(t *testing.T) {
	if !Nil.IsNull() {
		t.Fatal("Nil.IsNull() = false, want true")
	}
	if got := Nil.Kind(); got != Null {
		t.Fatalf("Nil.Kind() = %v, want Null", got)
	}
	arr := FromArray(Array{FromBool(true)})
	if got := arr.Kind(); got != ArrayKind {
		t.Fatalf("Kind() = %v, want ArrayKind", got)
	}
}
