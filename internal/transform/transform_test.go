package transform

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		text string
		mode Mode
		want string
	}{
		{"upper", "Hello, World", ModeUpper, "HELLO, WORLD"},
		{"lower", "Hello, WORLD", ModeLower, "hello, world"},
		{"upper unicode", "ünïcode café", ModeUpper, "ÜNÏCODE CAFÉ"},
		{"capitalize words", "hello world\nsecond LINE", ModeCapitalize, "Hello World\nSecond Line"},
		{"reverse lines", "one\ntwo\nthree", ModeReverseLines, "three\ntwo\none"},
		{"reverse keeps trailing newline as a line", "a\nb\n", ModeReverseLines, "\nb\na"},
		{"reverse single line", "only", ModeReverseLines, "only"},
		{"empty upper", "", ModeUpper, ""},
		{"empty reverse", "", ModeReverseLines, ""},
		{"unknown mode", "Keep Me", Mode(42), "Keep Me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.text, tt.mode))
		})
	}
}

func TestReverseLinesIsInvolution(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"a\nb\nc",
		"a\nb\n",
		"\n\nlast",
		"  indented\n\ttabbed\n",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Apply(Apply(in, ModeReverseLines), ModeReverseLines), "input %q", in)
	}
}

func TestUpperThenLowerEqualsLower(t *testing.T) {
	inputs := []string{"MiXeD case", "already lower", "ÀÉÎ õü", "123 !?"}
	for _, in := range inputs {
		assert.Equal(t, Apply(in, ModeLower), Apply(Apply(in, ModeUpper), ModeLower), "input %q", in)
	}
}

// latin1Text is random text drawn from ASCII and Latin-1
type latin1Text string

func (latin1Text) Generate(r *rand.Rand, size int) reflect.Value {
	runes := make([]rune, r.Intn(size+1))
	for i := range runes {
		c := rune(r.Intn(0x100))
		// µ upper-cases to Greek capital mu, which lower-cases to μ
		if c == 'µ' {
			c = 'm'
		}
		runes[i] = c
	}
	return reflect.ValueOf(latin1Text(runes))
}

func TestUpperThenLowerEqualsLowerLatin1(t *testing.T) {
	property := func(in latin1Text) bool {
		s := string(in)
		return Apply(Apply(s, ModeUpper), ModeLower) == Apply(s, ModeLower)
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))
}

func TestUpperThenLowerOutsideLatin1(t *testing.T) {
	// Long s has no uppercase of its own
	assert.Equal(t, "s", Apply(Apply("ſ", ModeUpper), ModeLower))
	assert.Equal(t, "ſ", Apply("ſ", ModeLower))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"UPPER", ModeUpper, false},
		{"upper", ModeUpper, false},
		{" Lower ", ModeLower, false},
		{"capitalize", ModeCapitalize, false},
		{"title", ModeCapitalize, false},
		{"REVERSE_LINES", ModeReverseLines, false},
		{"reverse", ModeReverseLines, false},
		{"1", ModeUpper, false},
		{"4", ModeReverseLines, false},
		{"5", 0, true},
		{"0", 0, true},
		{"", 0, true},
		{"shout", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, []Mode{ModeUpper, ModeLower, ModeCapitalize, ModeReverseLines}, Modes())
	for _, m := range Modes() {
		assert.True(t, m.Valid())
		assert.NotEmpty(t, m.Description())
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Mode(9)", Mode(9).String())
	assert.False(t, Mode(0).Valid())
}

func TestRequestValidate(t *testing.T) {
	valid := Request{Source: "in.txt", Destination: "out.txt", Mode: ModeLower}
	assert.NoError(t, valid.Validate())

	missingSource := valid
	missingSource.Source = "  "
	assert.Error(t, missingSource.Validate())

	missingDest := valid
	missingDest.Destination = ""
	assert.Error(t, missingDest.Validate())

	badMode := valid
	badMode.Mode = 0
	assert.Error(t, badMode.Validate())
}
