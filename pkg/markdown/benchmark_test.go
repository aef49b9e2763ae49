package markdown_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/aethermark/pkg/markdown"
)

const benchDocument = `# Release notes

Intro paragraph spanning
two lines of text.

> A quoted block
> - with a list
>   continuing here

1. first
2. second

   nested paragraph

` + "```go\nfunc main() {}\n```\n" + `
    indented code

Setext heading
--------------

***
`

func BenchmarkParse(b *testing.B) {
	for _, preset := range markdown.PresetNames() {
		b.Run(preset, func(b *testing.B) {
			md, err := markdown.New(preset)
			if err != nil {
				b.Fatal(err)
			}
			src := strings.Repeat(benchDocument, 50)

			b.SetBytes(int64(len(src)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := md.Parse(src, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
