package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aethermark/internal/ui/pretty"
	"github.com/yaklabco/aethermark/pkg/mdast"
)

func TestTokenLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	heading := mdast.NewToken("heading_open", "h2", mdast.NestingOpen)
	heading.Markup = "##"
	heading.SetMap(0, 1)

	para := mdast.NewToken("paragraph_open", "p", mdast.NestingOpen)
	para.Level = 2
	para.Hidden = true

	fence := mdast.NewToken("fence", "code", mdast.NestingSelf)
	fence.Info = "go"
	fence.Content = "x := 1\n"

	closer := mdast.NewToken("bullet_list_close", "ul", mdast.NestingClose)

	tests := []struct {
		name string
		tok  *mdast.Token
		want string
	}{
		{"markup and map", heading, `heading_open <h2> "##" [0,1)`},
		{"hidden indented", para, `    paragraph_open <p> hidden`},
		{"content quoted", fence, `fence <code> info="go" "x := 1\n"`},
		{"close", closer, `bullet_list_close <ul>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.TokenLine(tt.tok, 0))
		})
	}
}

func TestTokenLineTruncates(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tok := mdast.NewToken("inline", "", mdast.NestingSelf)
	tok.Content = strings.Repeat("word ", 40)

	line := styles.TokenLine(tok, 40)
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), 40)
	assert.True(t, strings.HasSuffix(line, "…"))
	assert.True(t, strings.HasPrefix(line, `inline "word`))
}

func TestFileHeaderAndError(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md (1 token)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (3 tokens)", styles.FormatFileHeader("a.md", 3))
	assert.Equal(t, "b.md: error: boom", styles.FormatFileError("b.md", errors.New("boom")))
}
