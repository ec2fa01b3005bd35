package transform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/rangescan/pkg/scan"
)

type fakeScripts map[string]scan.StringFunc

func (f fakeScripts) Func(name string) (scan.StringFunc, error) {
	fn, ok := f[name]
	if !ok {
		return nil, errors.New("missing " + name)
	}
	return fn, nil
}

func TestBuiltins(t *testing.T) {
	tests := []struct {
		name string
		fn   scan.StringFunc
		in   string
		want string
	}{
		{"upper", Upper, "foo", "FOO"},
		{"upper german", Upper, "straße", "STRASSE"},
		{"lower", Lower, "FoO", "foo"},
		{"capitalize", Capitalize, "foo", "Foo"},
		{"capitalize words", Capitalize, "hello wORLD", "Hello World"},
		{"reverse", Reverse, "abc", "cba"},
		{"reverse combining", Reverse, "e\u0301a", "ae\u0301"},
		{"redact", Redact, "héllo", "*****"},
		{"redact empty", Redact, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("upper", nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC", fn("abc"))

	fn, err = Lookup("identity", nil)
	require.NoError(t, err)
	assert.Nil(t, fn)

	fn, err = Lookup("", nil)
	require.NoError(t, err)
	assert.Nil(t, fn)

	_, err = Lookup("shout", nil)
	assert.ErrorIs(t, err, ErrUnknown)
}

func TestLookupScript(t *testing.T) {
	scripts := fakeScripts{"wrap": func(s string) string { return "<" + s + ">" }}

	fn, err := Lookup("lua:wrap", scripts)
	require.NoError(t, err)
	assert.Equal(t, "<x>", fn("x"))

	_, err = Lookup("lua:missing", scripts)
	assert.Error(t, err)

	_, err = Lookup("lua:wrap", nil)
	assert.ErrorIs(t, err, ErrNoScripts)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"capitalize", "identity", "lower", "redact", "reverse", "upper"}, Names())
	assert.True(t, IsScript("lua:x"))
	assert.False(t, IsScript("upper"))
}

func TestReassembleWithBuiltins(t *testing.T) {
	got := scan.Reassemble("foobarfoobaz", "foo", Upper, Capitalize)
	assert.Equal(t, "FooBARFooBAZ", got)
}
