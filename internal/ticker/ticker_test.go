package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"shanghai main", "600519", true},
		{"star market", "688981", true},
		{"shenzhen main", "000001", true},
		{"chinext", "300750", true},
		{"beijing 83", "830799", true},
		{"beijing 43", "430047", true},
		{"beijing 87", "871981", true},
		{"empty", "", false},
		{"five digits", "12345", false},
		{"seven digits", "6005190", false},
		{"letters", "60051a", false},
		{"unknown prefix", "900901", false},
		{"prefix 20", "200002", false},
		{"whitespace", " 60051", false},
		{"full-width digits", "６００５１９", false},
		{"sign", "-60051", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValid(tt.code))
		})
	}
}

func TestIsValid_NeverPanics(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "0", "\x00\x00\x00\x00\x00\x00", "日本語テキスト", "60\xff\xfe19", "{}[]()"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { IsValid(in) })
	}
}

func TestExchange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SH", Exchange("600519"))
	assert.Equal(t, "SH", Exchange("688981"))
	assert.Equal(t, "SZ", Exchange("000001"))
	assert.Equal(t, "SZ", Exchange("300750"))
	assert.Equal(t, "BJ", Exchange("430047"))
	assert.Equal(t, "", Exchange("12345"))
}
