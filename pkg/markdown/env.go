package markdown

// Env carries caller and plugin data through one parse. Rules read and write
// it; the parser itself never inspects it.
type Env struct {
	values map[string]any
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{values: make(map[string]any)}
}

// Set stores value under key.
func (e *Env) Set(key string, value any) {
	if e.values == nil {
		e.values = make(map[string]any)
	}
	e.values[key] = value
}

// Get returns the value stored under key.
func (e *Env) Get(key string) (any, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Delete removes key.
func (e *Env) Delete(key string) {
	delete(e.values, key)
}

// Len returns the number of stored keys.
func (e *Env) Len() int {
	return len(e.values)
}

// EnvValue returns the value under key if it exists and has type T.
func EnvValue[T any](env *Env, key string) (T, bool) {
	var zero T
	if env == nil {
		return zero, false
	}
	v, ok := env.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
