package decider

import (
	"bufio"
	"io"
)

// Property is one named workflow run setting.
type Property struct {
	Key, Value string
}

// Properties is an ordered list of workflow run settings. Order is the
// order in which the properties were added.
type Properties []Property

// Add appends a property.
func (p *Properties) Add(key, value string) {
	*p = append(*p, Property{key, value})
}

// Get returns the value of the first property with the given key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return "", false
}

// Keys returns the property keys in order.
func (p Properties) Keys() []string {
	keys := make([]string, len(p))
	for i, prop := range p {
		keys[i] = prop.Key
	}
	return keys
}

// WriteINI writes the properties as "key=value" lines.
func (p Properties) WriteINI(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, prop := range p {
		bw.WriteString(prop.Key)   // nolint: errcheck
		bw.WriteByte('=')          // nolint: errcheck
		bw.WriteString(prop.Value) // nolint: errcheck
		bw.WriteByte('\n')         // nolint: errcheck
	}
	return bw.Flush()
}
