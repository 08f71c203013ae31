package internal

// ContextValue returns the value stored under key, or T's zero value.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}
