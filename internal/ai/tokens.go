package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encoderMu sync.Mutex
	encoders  = map[string]*tiktoken.Tiktoken{}
)

// estimateTokens оценивает число токенов, когда провайдер не вернул usage.
// Возвращает 0, если токенизатор недоступен.
func estimateTokens(model string, texts ...string) int {
	enc := encoderFor(model)
	if enc == nil {
		return 0
	}
	total := 0
	for _, text := range texts {
		total += len(enc.Encode(text, nil, nil))
	}
	return total
}

func encoderFor(model string) *tiktoken.Tiktoken {
	encoderMu.Lock()
	defer encoderMu.Unlock()

	if enc, ok := encoders[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// deepseek и прочие неизвестные tiktoken модели
		enc, err = tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	}
	if err != nil {
		enc = nil
	}
	encoders[model] = enc
	return enc
}
