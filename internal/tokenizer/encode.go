package tokenizer

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/example/go-fsw-tokenizer/internal/fsw"
)

// TextToTokens parses FSW text and returns the token sequence for its signs.
// The encoder does no validation of its own: parse failures wrap
// fsw.ErrParse, and coordinates outside 250..749 produce position tokens
// that are not in the vocabulary.
//
// Sort prefixes are not tokenized.
func TextToTokens(text string) (iter.Seq[string], error) {
	signs, err := fsw.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	return SignTokens(signs), nil
}

// SignTokens yields the tokens of each sign: the box, then every content
// symbol in order, each followed by its two position tokens.
func SignTokens(signs []fsw.Sign) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, sign := range signs {
			if !yieldSymbol(sign.Box, yield) {
				return
			}
			for _, sym := range sign.Symbols {
				if !yieldSymbol(sym, yield) {
					return
				}
			}
		}
	}
}

func yieldSymbol(sym fsw.Symbol, yield func(string) bool) bool {
	for _, tok := range SymbolTokens(sym) {
		if !yield(tok) {
			return false
		}
	}
	return true
}

// SymbolTokens returns the tokens for a single symbol.
func SymbolTokens(sym fsw.Symbol) []string {
	x := "p" + strconv.Itoa(sym.Position.X)
	y := "p" + strconv.Itoa(sym.Position.Y)

	if sym.IsBox() {
		return []string{sym.Key, x, y}
	}

	return []string{
		sym.Base(),
		"c" + string(sym.Fill()),
		"r" + string(sym.Rotation()),
		x,
		y,
	}
}
