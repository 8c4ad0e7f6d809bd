package internal

import (
	"reflect"
	"testing"

	"github.com/Hanaasagi/tricomment/pkg/formula"
	"github.com/Hanaasagi/tricomment/pkg/record"
)

func testStore() *Store {
	return NewStore(map[string]string{
		"木": "[a{木},ab_cd,mu4]",
		"林": "[xy,z,lin2]",
		"森": "[mno,pq,sen1]",
		"口": "[k,,kou3]",
	})
}

func testTable(t *testing.T, entries ...formula.TableEntry) *formula.Table {
	t.Helper()
	table, err := formula.BuildTable(entries)
	if err != nil {
		t.Fatalf("BuildTable failed: %v", err)
	}
	return table
}

func TestComposeSpelling(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaAbBaBb"})
	c := NewComposer(table, testStore())

	got, ok := c.Compose("木林", record.Spelling)
	if !ok {
		t.Fatal("Compose returned no result")
	}
	if want := "a{木}xy"; got != want {
		t.Errorf("Compose = %q; want %q", got, want)
	}
}

func TestComposeNegativeIndices(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 3, Formula: "AaBaZz"})
	c := NewComposer(table, testStore())

	// Z resolves to the last character, z to its last component.
	got, ok := c.Compose("木林森", record.Spelling)
	if !ok {
		t.Fatal("Compose returned no result")
	}
	if want := "axo"; got != want {
		t.Errorf("Compose = %q; want %q", got, want)
	}
}

func TestComposeMissingRecordAbortsWholePhrase(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBa"})
	c := NewComposer(table, testStore())

	if got, ok := c.Compose("木水", record.Spelling); ok {
		t.Errorf("Compose with unknown character = %q; want no result", got)
	}
}

func TestComposeUnconfiguredLength(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBa"})
	c := NewComposer(table, testStore())

	if _, ok := c.Compose("木林森", record.Spelling); ok {
		t.Error("Compose of length 3 should have no rule")
	}
	if _, ok := c.Compose("木", record.Spelling); ok {
		t.Error("Compose of a single character is never attempted")
	}
}

func TestComposeOutOfRangeComponentUsesPlaceholder(t *testing.T) {
	// 'd' asks for component 4; 林's spelling only has two.
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBd"})
	c := NewComposer(table, testStore())

	got, ok := c.Compose("木林", record.Spelling)
	if !ok {
		t.Fatal("Compose returned no result")
	}
	if want := "a" + Placeholder; got != want {
		t.Errorf("Compose = %q; want %q", got, want)
	}
}

func TestComposeCharIndexOutOfRange(t *testing.T) {
	// 'C' points past a two-character phrase.
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaCa"})
	c := NewComposer(table, testStore())

	if _, ok := c.Compose("木林", record.Spelling); ok {
		t.Error("Compose with char index past the phrase should have no result")
	}
}

func TestComposeTerseCode(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBa"})
	c := NewComposer(table, testStore())

	got, ok := c.Compose("木林", record.CodeTerse)
	if !ok {
		t.Fatal("Compose returned no result")
	}
	if want := "az"; got != want {
		t.Errorf("Compose = %q; want %q", got, want)
	}
}

func TestComposeCodesVariants(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBa"})
	c := NewComposer(table, testStore())

	got, ok := c.ComposeCodes("木林")
	if !ok {
		t.Fatal("ComposeCodes returned no result")
	}
	if want := []string{"az", "cz"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ComposeCodes = %v; want %v", got, want)
	}
}

func TestComposeCodesRequiresCodeField(t *testing.T) {
	table := testTable(t, formula.TableEntry{Length: 2, Formula: "AaBa"})
	c := NewComposer(table, testStore())

	// 口 has an empty code field.
	if got, ok := c.ComposeCodes("木口"); ok {
		t.Errorf("ComposeCodes without a code field = %v; want no result", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	table := testTable(t, formula.TableEntry{Min: 2, Max: 3, Formula: "AaZa"})
	c := NewComposer(table, testStore())

	first, ok := c.Compose("林森", record.Spelling)
	if !ok {
		t.Fatal("Compose returned no result")
	}
	for i := 0; i < 5; i++ {
		again, ok := c.Compose("林森", record.Spelling)
		if !ok || again != first {
			t.Fatalf("Compose not deterministic: %q vs %q", again, first)
		}
	}
}
