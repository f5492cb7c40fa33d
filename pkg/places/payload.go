package places

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/rgreinho/request-yo-racks-api/pkg/errors"
)

// Payload is a raw provider response: a JSON object tree whose shape is
// owned by the provider. Only Collector implementations interpret it.
type Payload map[string]any

// Has reports whether key is present at the top level.
func (p Payload) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p[key]
	return ok
}

// Object returns the nested object stored under key, or nil.
func (p Payload) Object(key string) Payload {
	if p == nil {
		return nil
	}
	switch v := p[key].(type) {
	case map[string]any:
		return Payload(v)
	case Payload:
		return v
	}
	return nil
}

// List returns the array stored under key, or nil.
func (p Payload) List(key string) []any {
	if p == nil {
		return nil
	}
	list, _ := p[key].([]any)
	return list
}

// Item returns the object at index of the array stored under key. It returns
// nil when the key is missing, the index is out of range or the element is
// not an object.
func (p Payload) Item(key string, index int) Payload {
	list := p.List(key)
	if index < 0 || index >= len(list) {
		return nil
	}
	switch v := list[index].(type) {
	case map[string]any:
		return Payload(v)
	case Payload:
		return v
	}
	return nil
}

// Decode copies the payload into a provider-shaped struct using its json tags.
func (p Payload) Decode(target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(map[string]any(p)); err != nil {
		return errors.WrapParse("payload", "", err)
	}
	return nil
}
