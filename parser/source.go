package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/robinvdvleuten/ptaledger/ast"
)

// lineIndex maps byte offsets to 1-based line and rune column positions.
type lineIndex struct {
	src    string
	starts []int // byte offset of the first byte of every line
}

func newLineIndex(src string) *lineIndex {
	starts := make([]int, 1, 64)
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{src: src, starts: starts}
}

func (li *lineIndex) position(offset int) ast.FilePosition {
	if offset > len(li.src) {
		offset = len(li.src)
	}
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	col := utf8.RuneCountInString(li.src[li.starts[line]:offset]) + 1
	return ast.FilePosition{Line: line + 1, Col: col}
}
