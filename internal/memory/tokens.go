package memory

import (
	"sync"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// perTurnOverhead approximates the role/framing tokens of a chat message.
const perTurnOverhead = 4

// Tokenizer counts tokens with a BPE encoding and falls back to a
// character heuristic when the encoding cannot be loaded (offline hosts
// have no BPE cache).
type Tokenizer struct {
	mu      sync.Mutex
	encoder *tiktoken.Tiktoken
}

func NewTokenizer(encoding string) *Tokenizer {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return &Tokenizer{}
	}
	return &Tokenizer{encoder: enc}
}

func (t *Tokenizer) Fallback() bool { return t.encoder == nil }

func (t *Tokenizer) CountText(text string) int {
	if text == "" {
		return 0
	}
	if t.encoder == nil {
		return heuristicCount(text)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.encoder.Encode(text, nil, nil))
}

type heuristicCounter struct{}

func (heuristicCounter) CountText(text string) int { return heuristicCount(text) }

// heuristicCount assumes ~4 characters per token.
func heuristicCount(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}
