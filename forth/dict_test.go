package forth

import "testing"

func TestDictionaryDefineLookupCaseInsensitive(t *testing.T) {
	d := newDictionary()
	ent := &entry{name: "Dup"}
	d.define(ent)
	if d.lookup("DUP") != ent {
		t.Error("lookup(\"DUP\") should find entry defined as \"Dup\"")
	}
	if d.lookup("dup") != ent {
		t.Error("lookup(\"dup\") should find entry defined as \"Dup\"")
	}
}

func TestDictionaryRedefinitionAndRestore(t *testing.T) {
	d := newDictionary()
	first := &entry{name: "X"}
	d.define(first)
	rev := d.revision()

	second := &entry{name: "X"}
	d.define(second)
	if d.lookup("X") != second {
		t.Fatal("lookup should resolve to the most recent definition")
	}

	d.restore(rev)
	if d.lookup("X") != first {
		t.Error("restore should undo the redefinition")
	}
}

func TestDictionaryRestoreUndefines(t *testing.T) {
	d := newDictionary()
	rev := d.revision()
	d.define(&entry{name: "NEWWORD"})
	d.restore(rev)
	if d.lookup("NEWWORD") != nil {
		t.Error("restore should undefine a word that did not exist at the checkpoint")
	}
}

func TestXtForIsIdempotentAndNeverReused(t *testing.T) {
	d := newDictionary()
	a := &entry{name: "A"}
	b := &entry{name: "B"}
	xtA1 := d.xtFor(a)
	xtB := d.xtFor(b)
	xtA2 := d.xtFor(a)

	if xtA1 != xtA2 {
		t.Errorf("xtFor(a) not idempotent: %d != %d", xtA1, xtA2)
	}
	if xtA1 == xtB {
		t.Error("distinct entries must not share an xt")
	}
	if d.entryForXT(xtA1) != a {
		t.Error("entryForXT should resolve back to the same entry")
	}
}

func TestEntryForXTOutOfRange(t *testing.T) {
	d := newDictionary()
	if d.entryForXT(0) != nil {
		t.Error("entryForXT(0) should be nil: below xtBase")
	}
	if d.entryForXT(xtBase) != nil {
		t.Error("entryForXT(xtBase) should be nil: nothing assigned yet")
	}
}
