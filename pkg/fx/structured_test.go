package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructRef(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  StructRef
	}{
		{"column", "Table1[Col]", StructRef{Table: "Table1", Columns: []string{"Col"}}},
		{"column with spaces", "Table1[Sales Amount]", StructRef{Table: "Table1", Columns: []string{"Sales Amount"}}},
		{"whitespace is kept", "Table1[ foo ]", StructRef{Table: "Table1", Columns: []string{" foo "}}},
		{"escaped column", "Table1[it''s]", StructRef{Table: "Table1", Columns: []string{"it's"}}},
		{"escaped bracket", "Table1[a'[1']]", StructRef{Table: "Table1", Columns: []string{"a[1]"}}},
		{"section", "Table1[#Totals]", StructRef{Table: "Table1", Sections: []Section{SectionTotals}}},
		{"section any case", "Table1[#this row]", StructRef{Table: "Table1", Sections: []Section{SectionThisRow}}},
		{"whole table", "Table1[]", StructRef{Table: "Table1"}},
		{"column range", "Table1[[Col1]:[Col2]]", StructRef{Table: "Table1", Columns: []string{"Col1", "Col2"}}},
		{"section and columns", "Table1[[#Data],[Col1]:[Col2]]", StructRef{
			Table: "Table1", Columns: []string{"Col1", "Col2"}, Sections: []Section{SectionData},
		}},
		{"at column", "Table1[@Col]", StructRef{
			Table: "Table1", Columns: []string{"Col"}, Sections: []Section{SectionThisRow},
		}},
		{"at braced column", "Table1[@[Col 1]]", StructRef{
			Table: "Table1", Columns: []string{"Col 1"}, Sections: []Section{SectionThisRow},
		}},
		{"sections are ordered", "Table1[[#data],[#headers]]", StructRef{
			Table: "Table1", Sections: []Section{SectionHeaders, SectionData},
		}},
		{"data and totals", "Table1[[#Totals], [#Data]]", StructRef{
			Table: "Table1", Sections: []Section{SectionData, SectionTotals},
		}},
		{"no table", "[[#This Row],[Foo]]", StructRef{
			Columns: []string{"Foo"}, Sections: []Section{SectionThisRow},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := ParseStructRef(tt.input, RefOptions{})
			require.True(t, ok)
			require.NotNil(t, ref.Struct)
			assert.Equal(t, tt.want.Table, ref.Struct.Table)
			assert.Equal(t, tt.want.Columns, ref.Struct.Columns)
			assert.Equal(t, tt.want.Sections, ref.Struct.Sections)
		})
	}
}

func TestParseStructRef_Prefix(t *testing.T) {
	ref, ok := ParseStructRef("'Sheet 1'!Table1[Col]", RefOptions{})
	require.True(t, ok)
	assert.Equal(t, []string{"Sheet 1"}, ref.Context)

	ref, ok = ParseStructRef("[Book]Sheet1!Table1[Col]", RefOptions{XLSX: true})
	require.True(t, ok)
	assert.Equal(t, "Book", ref.WorkbookName)
	assert.Equal(t, "Sheet1", ref.SheetName)
}

func TestParseStructRef_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"illegal section mix", "Table1[[#Headers],[#Totals]]"},
		{"all with data", "Table1[[#All],[#Data]]"},
		{"unknown keyword", "Table1[#Foo]"},
		{"unclosed", "Table1[[#Data],[Col]"},
		{"dangling comma", "Table1[[#Data],]"},
		{"range", "A1"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseStructRef(tt.input, RefOptions{})
			assert.False(t, ok)
		})
	}
}

func TestStringifyStructRef(t *testing.T) {
	tests := []struct {
		name    string
		ref     StructRef
		thisRow bool
		want    string
	}{
		{"column", StructRef{Table: "T", Columns: []string{"Col"}}, false, "T[Col]"},
		{"special column", StructRef{Table: "T", Columns: []string{"a#b"}}, false, "T[a'#b]"},
		{"section", StructRef{Table: "T", Sections: []Section{SectionTotals}}, false, "T[#Totals]"},
		{"this row section", StructRef{Table: "T", Sections: []Section{SectionThisRow}}, false, "T[#This Row]"},
		{"at column", StructRef{Table: "T", Columns: []string{"Foo"}, Sections: []Section{SectionThisRow}}, false, "T[@Foo]"},
		{"at braced column", StructRef{Table: "T", Columns: []string{"Foo Bar"}, Sections: []Section{SectionThisRow}}, false, "T[@[Foo Bar]]"},
		{"long this row", StructRef{Table: "T", Columns: []string{"Foo"}, Sections: []Section{SectionThisRow}}, true, "T[[#This Row],[Foo]]"},
		{"two sections", StructRef{Table: "T", Sections: []Section{SectionHeaders, SectionData}}, false, "T[[#Headers],[#Data]]"},
		{"column range", StructRef{Table: "T", Columns: []string{"A", "B"}}, false, "T[[A]:[B]]"},
		{"section and range", StructRef{Table: "T", Columns: []string{"A", "B"}, Sections: []Section{SectionData}}, false, "T[[#Data],[A]:[B]]"},
		{"whole table", StructRef{Table: "T"}, false, "T[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := &Reference{Struct: &tt.ref}
			assert.Equal(t, tt.want, StringifyStructRef(ref, RefOptions{ThisRow: tt.thisRow}))
		})
	}
}

func TestStructRef_RoundTrip(t *testing.T) {
	inputs := []string{
		"Table1[Col]",
		"Table1[#All]",
		"Table1[@Col]",
		"Table1[@[Col 1]]",
		"Table1[[#Headers],[#Data]]",
		"Table1[[#Data],[A]:[B]]",
		"Table1[[A]:[B]]",
		"Table1[a'#b]",
		"'My Sheet'!Table1[Col]",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			ref, ok := ParseStructRef(input, RefOptions{})
			require.True(t, ok)
			assert.Equal(t, input, StringifyStructRef(ref, RefOptions{}))
		})
	}
}
