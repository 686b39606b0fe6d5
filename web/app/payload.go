package app

import (
	"fmt"

	"github.com/JaimeStill/translation-console/pkg/apiclient"
)

// object is a decoded JSON object from the backend. Views never reshape
// payloads; templates read fields by key.
type object = map[string]any

type batchesPayload struct {
	Batches []object `json:"batches"`
}

type batchPayload struct {
	Batch object `json:"batch"`
}

type filesPayload struct {
	Files []object `json:"files"`
}

type termsPayload struct {
	Terms []object `json:"terms"`
}

type articlePayload struct {
	Article object `json:"article"`
}

func decode[T any](resp *apiclient.Response) (T, error) {
	var v T
	if err := resp.Decode(&v); err != nil {
		return v, fmt.Errorf("decode %T: %w", v, err)
	}
	return v, nil
}

// idOf renders an id field for comparison with path parameters.
func idOf(o object) string {
	if o == nil {
		return ""
	}
	v, ok := o["id"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func articlesOf(batch object) []object {
	items, _ := batch["articles"].([]any)
	out := make([]object, 0, len(items))
	for _, item := range items {
		if a, ok := item.(map[string]any); ok {
			out = append(out, a)
		}
	}
	return out
}

// findArticle locates the article with id inside batches and returns it
// with the batch that holds it.
func findArticle(batches []object, id string) (article, batch object, ok bool) {
	for _, b := range batches {
		for _, a := range articlesOf(b) {
			if idOf(a) == id {
				return a, b, true
			}
		}
	}
	return nil, nil, false
}
