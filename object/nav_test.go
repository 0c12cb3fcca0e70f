package object

import "testing"

func TestDictKey(t *testing.T) {
	dict := FromDictionary(Dictionary{"Type": FromName("Page")})

	v, ok := DictKey(dict, "Type")
	if !ok {
		t.Fatal("DictKey(dict, Type) = (_, false), want true")
	}
	if nm, ok := AsName(v); !ok || nm != "Page" {
		t.Fatalf("DictKey(dict, Type) = %v, want Name Page", v)
	}

	if _, ok := DictKey(dict, "Missing"); ok {
		t.Fatal("DictKey(dict, Missing) = (_, true), want false")
	}
	if _, ok := DictKey(FromNumber(NewInteger(1)), "Type"); ok {
		t.Fatal("DictKey on a non-dictionary = (_, true), want false")
	}
}

func TestAsDictionaryAcceptsStream(t *testing.T) {
	s := FromStream(Stream{Dict: Dictionary{"Length": FromNumber(NewInteger(5))}, StreamPos: 20})

	d, ok := AsDictionary(s)
	if !ok {
		t.Fatal("AsDictionary(stream) = (_, false), want true")
	}
	if n, ok := AsNumber(d["Length"]); !ok || n.Int64() != 5 {
		t.Fatalf("AsDictionary(stream)[Length] = %v, want Integer 5", d["Length"])
	}
}

func TestNth(t *testing.T) {
	arr := FromArray(Array{FromNumber(NewInteger(1)), FromNumber(NewInteger(2))})

	if v, ok := Nth(arr, 1); !ok {
		t.Fatal("Nth(arr, 1) = (_, false), want true")
	} else if n, ok := AsNumber(v); !ok || n.Int64() != 2 {
		t.Fatalf("Nth(arr, 1) = %v, want Integer 2", v)
	}

	if _, ok := Nth(arr, 2); ok {
		t.Fatal("Nth(arr, 2) = (_, true), want false (out of bounds)")
	}
	if _, ok := Nth(arr, -1); ok {
		t.Fatal("Nth(arr, -1) = (_, true), want false (out of bounds)")
	}
}

func TestWithDictKeyLeavesOriginalUntouched(t *testing.T) {
	orig := Dictionary{"N": FromNumber(NewInteger(1))}
	dict := FromDictionary(orig)

	updated := WithDictKey(dict, "N", func(v Object) Object {
		n, _ := AsNumber(v)
		return FromNumber(NewInteger(n.Int64() + 1))
	})

	if n, _ := AsNumber(orig["N"]); n.Int64() != 1 {
		t.Fatalf("original dictionary mutated: N = %v, want 1", orig["N"])
	}
	got, _ := DictKey(updated, "N")
	if n, _ := AsNumber(got); n.Int64() != 2 {
		t.Fatalf("updated dictionary N = %v, want 2", got)
	}

	// Absent key: the dictionary comes back unchanged.
	same := WithDictKey(dict, "Missing", func(v Object) Object { return v })
	if same.String() != dict.String() {
		t.Fatalf("WithDictKey on a missing key changed the dictionary")
	}
}

func TestWithNth(t *testing.T) {
	orig := Array{FromNumber(NewInteger(10)), FromNumber(NewInteger(20))}
	arr := FromArray(orig)

	updated := WithNth(arr, 0, func(v Object) Object {
		n, _ := AsNumber(v)
		return FromNumber(NewInteger(n.Int64() * 2))
	})

	if n, _ := AsNumber(orig[0]); n.Int64() != 10 {
		t.Fatalf("original array mutated: [0] = %v, want 10", orig[0])
	}
	got, _ := Nth(updated, 0)
	if n, _ := AsNumber(got); n.Int64() != 20 {
		t.Fatalf("updated array [0] = %v, want 20", got)
	}

	if out := WithNth(arr, 5, func(v Object) Object { return v }); out.String() != arr.String() {
		t.Fatalf("WithNth out of bounds changed the array")
	}
}
