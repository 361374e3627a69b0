package domain

import "fmt"

// Texter is implemented by values that expose their textual content.
type Texter interface {
	Text() string
}

// TextOf extracts text from a value of one of three shapes: something that
// exposes textual content (Texter), a mapping with a "content" field, or any
// other value coerced to text. It never fails; unknown shapes are stringified.
func TextOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case Texter:
		return t.Text()
	case map[string]any:
		return contentField(t)
	case map[string]string:
		return t["content"]
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

func contentField(m map[string]any) string {
	c, ok := m["content"]
	if !ok || c == nil {
		return ""
	}
	if s, ok := c.(string); ok {
		return s
	}
	return fmt.Sprint(c)
}
