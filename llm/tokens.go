package llm

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingMu    sync.Mutex
	encodingCache = make(map[string]*tiktoken.Tiktoken)
)

// CountTokens reports how many tokens text occupies under the model's
// encoding. Unknown models fall back to the gpt-4o encoding. Encodings
// are cached per model.
func CountTokens(model, text string) (int, error) {
	encoding, err := encodingFor(model)
	if err != nil {
		return 0, err
	}
	return len(encoding.Encode(text, nil, nil)), nil
}

func encodingFor(model string) (*tiktoken.Tiktoken, error) {
	encodingMu.Lock()
	defer encodingMu.Unlock()

	if encoding, ok := encodingCache[model]; ok {
		return encoding, nil
	}
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		encoding, err = tiktoken.EncodingForModel("gpt-4o")
		if err != nil {
			return nil, fmt.Errorf("no token encoding available for %q: %w", model, err)
		}
	}
	encodingCache[model] = encoding
	return encoding, nil
}
