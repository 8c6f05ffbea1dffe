package docrag

import "fmt"

// ValidateEmbedding reports whether an embedding vector is usable for
// storage: non-empty and, when expectedDim > 0, exactly that dimension.
func ValidateEmbedding(embedding []float32, expectedDim int) bool {
	if len(embedding) == 0 {
		return false
	}
	if expectedDim > 0 && len(embedding) != expectedDim {
		return false
	}
	return true
}

// ValidatePayload reports whether a payload carries enough identification
// to be stored: a non-empty map with at least a url or text key.
func ValidatePayload(payload map[string]any) bool {
	if len(payload) == 0 {
		return false
	}
	if _, ok := payload["url"]; ok {
		return true
	}
	if _, ok := payload["text"]; ok {
		return true
	}
	return false
}

// Reconciliation is the outcome of comparing expected vs stored vector counts.
type Reconciliation struct {
	ExpectedCount int      `json:"expectedCount"`
	ActualCount   int      `json:"actualCount"`
	Passed        bool     `json:"passed"`
	Issues        []string `json:"issues"`
}

// Reconcile compares the number of vectors that should have been stored
// against the count the store reports. A negative actual count is flagged
// as a collaborator bug.
func Reconcile(expected, actual int) Reconciliation {
	r := Reconciliation{
		ExpectedCount: expected,
		ActualCount:   actual,
		Passed:        true,
		Issues:        []string{},
	}

	if expected != actual {
		r.Passed = false
		r.Issues = append(r.Issues, fmt.Sprintf("Expected %d vectors, but found %d", expected, actual))
	}
	if actual < 0 {
		r.Passed = false
		r.Issues = append(r.Issues, "Negative vector count reported")
	}

	return r
}
