// FILE: lixenwraith/logprops/decode.go
package logprops

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// ScanTag is the struct tag read by Scan.
const ScanTag = "property"

// Scan decodes the resolved properties below prefix into target, which must
// be a non-nil pointer. Keys below the prefix become nested fields, so with
// prefix "log4j2.status", "log4j2.status.level" fills the field tagged
// `property:"level"`. Field names match case-insensitively.
func (e *Environment) Scan(prefix string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	sectionMap := nestProperties(e.Subset(prefix))

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          ScanTag,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(sectionMap); err != nil {
		return fmt.Errorf("decode failed for prefix %q: %w", prefix, err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToDurationHookFunc(),
		stringToBooleanPropertyHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToDurationHookFunc parses durations with ParseDuration, so bare
// numbers are milliseconds.
func stringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return ParseDuration(data.(string))
	}
}

func stringToBooleanPropertyHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(BooleanProperty(0)) {
			return data, nil
		}
		return ParseBooleanProperty(data.(string), true), nil
	}
}
