// File: strataconf/strata/decode.go
package strata

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// tagName is the struct tag consulted by Scan and Defaults.
const tagName = "strata"

// Scan decodes the subtree at path into target, which must be a
// non-nil pointer to a struct or map. Shape disagreements between the
// subtree and the target surface as decode errors. An empty path
// decodes the whole tree.
func (c *Config) Scan(path string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("strata: scan target must be a non-nil pointer, got %T", target)
	}

	v, err := c.Get(path)
	if err != nil {
		return err
	}
	if v.Kind() != KindTable {
		return fmt.Errorf("%w: path %q refers to a %s, not a table", ErrTypeMismatch, path, v.Kind())
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("strata: decoder creation failed: %w", err)
	}
	if err := dec.Decode(v.Interface()); err != nil {
		return fmt.Errorf("strata: scan %q into %T: %w", path, target, err)
	}
	return nil
}
