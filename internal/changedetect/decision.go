package changedetect

// Decision says whether an asset needs reprocessing.
type Decision string

const (
	// DecisionReprocess means the asset is new or has materially changed.
	DecisionReprocess Decision = "REPROCESS"
	// DecisionSkip means the asset is unchanged.
	DecisionSkip Decision = "SKIP"
)

// Decide compares the current hash against prior state. Prior state may be
// nil (never processed), a bare hash string, or a map carrying the hash
// under "hash" or "previousHash". Anything missing, malformed or different
// means REPROCESS; SKIP only on exact equality.
func Decide(currentHash string, priorState any) Decision {
	if priorState == nil {
		return DecisionReprocess
	}

	var previous string
	switch prior := priorState.(type) {
	case string:
		previous = prior
	case map[string]any:
		if h, ok := prior["hash"].(string); ok && h != "" {
			previous = h
		} else if h, ok := prior["previousHash"].(string); ok {
			previous = h
		}
	}

	if previous == "" {
		return DecisionReprocess
	}
	if previous == currentHash {
		return DecisionSkip
	}
	return DecisionReprocess
}
