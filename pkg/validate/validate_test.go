// Test Type: Unit Test
// Description: Tests for corruption signature scanning

package validate_test

import (
	"testing"

	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(findings []validate.Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Signature)
	}
	return out
}

func TestScan_FusedIdentifier(t *testing.T) {
	content := []byte("int f()\n{\n    int n = strle = NULLn(sz);\n}\n")

	findings := validate.Scan(content)

	require.NotEmpty(t, findings)
	assert.Contains(t, names(findings), "fused-null-identifier")
	for _, f := range findings {
		assert.Equal(t, 3, f.Line)
	}
}

func TestScan_Signatures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"clean", "int x = 1;\nchar* p = NULL;\n", nil},
		{"va_arg_null", "int i = va_arg(vl = NULL, int);\n", []string{"va-arg-null-assignment"}},
		{"extra_paren", "x = GetID());\n", []string{"extra-closing-paren"}},
		{"balanced_call", "x = f(GetID());\n", nil},
		{"truncated_memcpy", "memcp = NULL;\n", []string{"truncated-libc-call"}},
		{"plain_null_is_fine", "void* pData = NULL;\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(validate.Scan([]byte(tt.content))))
		})
	}
}

func TestScan_Location(t *testing.T) {
	content := []byte("a;\nbb;\n  x = NULLy;\n")

	findings := validate.Scan(content)

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, "fused-null-identifier", f.Signature)
	assert.Equal(t, 3, f.Line)
	assert.Equal(t, 3, f.Column)
	assert.Equal(t, 9, f.Offset)
	assert.Equal(t, "x = NULLy", f.Match)
}

func TestScan_OrderedByOffset(t *testing.T) {
	content := []byte("q()); a = NULLb; va_arg(v = NULL, int);\n")

	findings := validate.Scan(content)

	for i := 1; i < len(findings); i++ {
		assert.LessOrEqual(t, findings[i-1].Offset, findings[i].Offset)
	}
}

func TestCheck(t *testing.T) {
	findings, err := validate.Check("ok.cpp", []byte("int x;\n"))
	assert.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = validate.Check("bad.cpp", []byte("strle = NULLn\n"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCorruptionDetected))
	assert.NotEmpty(t, findings)
}
