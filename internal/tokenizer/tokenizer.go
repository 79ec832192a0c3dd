// Package tokenizer converts Formal SignWriting text to and from a closed
// vocabulary of tokens suitable for sequence models.
//
// Every symbol becomes a short run of tokens: box symbols keep their letter,
// content symbols are split into a base token (S + three hex digits), a column
// token for the fill digit and a row token for the rotation digit. Each symbol
// is followed by two position tokens, one per coordinate.
package tokenizer

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrUnknownToken is returned for tokens or ids outside the vocabulary.
	ErrUnknownToken = errors.New("token not in vocabulary")
	// ErrMalformedSequence is returned for token sequences the encoder
	// could not have produced.
	ErrMalformedSequence = errors.New("malformed token sequence")
)

// Tokenizer encodes FSW text into vocabulary ids and back.
type Tokenizer interface {
	// Encode tokenizes FSW text and returns vocabulary ids.
	Encode(text string) ([]int64, error)
	// Decode rebuilds FSW text from vocabulary ids.
	Decode(ids []int64) (string, error)
}

// SignWritingTokenizer implements Tokenizer over a fixed Vocabulary. It holds
// no mutable state and is safe for concurrent use.
type SignWritingTokenizer struct {
	vocab *Vocabulary
}

var _ Tokenizer = (*SignWritingTokenizer)(nil)

// New builds the vocabulary once and returns a tokenizer whose ids start at
// startingIndex.
func New(startingIndex int) *SignWritingTokenizer {
	return &SignWritingTokenizer{vocab: NewVocabulary(startingIndex)}
}

// Vocabulary returns the tokenizer's vocabulary.
func (t *SignWritingTokenizer) Vocabulary() *Vocabulary {
	return t.vocab
}

// TextToTokens parses FSW text and returns its token sequence. Parse failures
// wrap fsw.ErrParse. The sequence is lazy and may be ranged over repeatedly.
func (t *SignWritingTokenizer) TextToTokens(text string) (iter.Seq[string], error) {
	return TextToTokens(text)
}

// TokensToText rebuilds FSW text from tokens.
func (t *SignWritingTokenizer) TokensToText(tokens []string) (string, error) {
	return TokensToText(tokens)
}

// Encode implements Tokenizer.
func (t *SignWritingTokenizer) Encode(text string) ([]int64, error) {
	seq, err := t.TextToTokens(text)
	if err != nil {
		return nil, err
	}

	ids := []int64{}
	for tok := range seq {
		id, ok := t.vocab.Index(tok)
		if !ok {
			return nil, fmt.Errorf("encode %q: token %q: %w", text, tok, ErrUnknownToken)
		}
		ids = append(ids, int64(id))
	}

	return ids, nil
}

// Decode implements Tokenizer.
func (t *SignWritingTokenizer) Decode(ids []int64) (string, error) {
	tokens, err := t.IDsToTokens(ids)
	if err != nil {
		return "", err
	}
	return TokensToText(tokens)
}

// IDsToTokens maps vocabulary ids back to their tokens.
func (t *SignWritingTokenizer) IDsToTokens(ids []int64) ([]string, error) {
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tok, ok := t.vocab.Token(int(id))
		if !ok {
			return nil, fmt.Errorf("id %d at %d: %w", id, i, ErrUnknownToken)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// Tokens is TextToTokens collected into a slice.
func (t *SignWritingTokenizer) Tokens(text string) ([]string, error) {
	seq, err := t.TextToTokens(text)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}
