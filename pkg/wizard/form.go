package wizard

// FormState accumulates the answers of a wizard step: identifier to scalar
// value (string for text inputs, bool for checkboxes). It is threaded forward
// and backward across step transitions so re-entering a step preserves prior
// answers.
type FormState map[string]any

// Clone returns an independent copy, used when handing a snapshot to an
// asynchronous Select action.
func (f FormState) Clone() FormState {
	out := make(FormState, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// String returns the value stored under key if it is a string, else "".
func (f FormState) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the value stored under key if it is a bool, else false.
func (f FormState) Bool(key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}
