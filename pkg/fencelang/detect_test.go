package fencelang_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aethermark/pkg/fencelang"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang sh", "#!/bin/sh\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go code", "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"javascript code", "const x = () => { return 42; };\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"yaml content", "key: value\nother: 123\nlist:\n  - item1\n  - item2", "yaml"},
		{"rust code", "fn main() {\n    println!(\"Hello, world!\");\n}", "rust"},
		{"html document", "<!DOCTYPE html>\n<html><body></body></html>", "html"},
		{"sql query", "select * from users where id = 1;", "sql"},
		{"dockerfile", "FROM golang:1.25\nRUN go build ./...", "dockerfile"},
		{"empty", "", "text"},
		{"whitespace only", " \n\t\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, fencelang.Detect([]byte(tt.content)))
		})
	}
}

func TestFromInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"go", "go"},
		{" golang extra words", "go"},
		{"Python", "python"},
		{"sh", "bash"},
		{"{.js}", "javascript"},
		{"mermaid", "mermaid"},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fencelang.FromInfo(tt.info))
		})
	}
}
