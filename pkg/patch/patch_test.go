// Test Type: Unit Test
// Description: Tests for splicing edits into content

package patch_test

import (
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/fixes"
	"github.com/arthur-debert/tidyforge/pkg/patch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func e(offset, length int, text string) fixes.Edit {
	return fixes.Edit{FilePath: "a.cpp", Offset: offset, Length: length, Text: text}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		edits   []fixes.Edit
		want    string
	}{
		{"no_edits", "int x;", nil, "int x;"},
		{"replace_token", "int x = 1; int y = 2;", []fixes.Edit{e(4, 5, "int a")}, "int int a; int y = 2;"},
		{"insert_at_start", "x;", []fixes.Edit{e(0, 0, "int ")}, "int x;"},
		{"insert_at_end", "int x", []fixes.Edit{e(5, 0, ";")}, "int x;"},
		{"delete", "int  x;", []fixes.Edit{e(3, 1, "")}, "int x;"},
		{"several", "a b c", []fixes.Edit{e(0, 1, "A"), e(2, 1, "BB"), e(4, 1, "")}, "A BB "},
		{"two_inserts_same_offset", "ab", []fixes.Edit{e(1, 0, "x"), e(1, 0, "y")}, "axyb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := patch.Apply([]byte(tt.content), tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApply_Repeatable(t *testing.T) {
	content := []byte("char* p; int n; bool b;")
	edits := []fixes.Edit{e(7, 0, " = NULL"), e(14, 0, " = 0")}

	first, err := patch.Apply(content, edits)
	require.NoError(t, err)
	second, err := patch.Apply(content, edits)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "char* p; int n; bool b;", string(content))
}

func TestApply_InvariantViolations(t *testing.T) {
	content := []byte("0123456789")
	other := e(0, 1, "x")
	other.FilePath = "b.cpp"

	tests := []struct {
		name  string
		edits []fixes.Edit
	}{
		{"negative_offset", []fixes.Edit{e(-1, 1, "x")}},
		{"negative_length", []fixes.Edit{e(1, -1, "x")}},
		{"past_end", []fixes.Edit{e(8, 3, "x")}},
		{"offset_past_end", []fixes.Edit{e(11, 0, "x")}},
		{"overlap", []fixes.Edit{e(0, 5, "x"), e(4, 1, "y")}},
		{"unordered", []fixes.Edit{e(6, 1, "x"), e(2, 1, "y")}},
		{"mixed_files", []fixes.Edit{e(5, 1, "x"), other}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := patch.Apply(content, tt.edits)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvariantViolation))
		})
	}
}
