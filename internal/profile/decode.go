package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
)

var ErrNotObject = errors.New("profile payload is not a json object")

// primaryFields names the field a bare value lands in when a section entry
// arrives as text instead of an object.
var primaryFields = map[reflect.Type]string{
	reflect.TypeOf(Education{}):      "degree",
	reflect.TypeOf(Certification{}):  "name",
	reflect.TypeOf(Project{}):        "name",
	reflect.TypeOf(WorkExperience{}): "company",
	reflect.TypeOf(Improvement{}):    "suggestion",
}

func liftScalar(from reflect.Type, to reflect.Type, data any) (any, error) {
	key, ok := primaryFields[to]
	if !ok {
		return data, nil
	}

	switch from.Kind() {
	case reflect.String, reflect.Bool, reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{key: fmt.Sprint(data)}, nil
	}

	return data, nil
}

// Decode parses a loosely typed profile payload. Numbers are accepted where
// text is expected, single values where lists are expected, and bare strings
// where a section expects records. The result is normalized.
func Decode(data []byte) (*CandidateProfile, error) {
	p, _, err := DecodeLoose(data)
	return p, err
}

// DecodeLoose is Decode that also reports the top-level keys that could not
// be decoded. Those sections are left empty instead of failing the payload.
// Only a payload that is not a json object is an error.
func DecodeLoose(data []byte) (*CandidateProfile, []string, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse profile json: %w", err)
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, ErrNotObject
	}

	var p CandidateProfile
	if err := decodeInto(fields, &p); err != nil {
		p = CandidateProfile{}
		var dropped []string
		for key, value := range fields {
			section := map[string]any{key: value}
			if err := decodeInto(section, &CandidateProfile{}); err != nil {
				dropped = append(dropped, key)
				continue
			}
			if err := decodeInto(section, &p); err != nil {
				return nil, nil, fmt.Errorf("decode profile: %w", err)
			}
		}
		sort.Strings(dropped)
		p.Normalize()
		return &p, dropped, nil
	}

	p.Normalize()
	return &p, nil, nil
}

func decodeInto(fields map[string]any, p *CandidateProfile) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncType(liftScalar),
		WeaklyTypedInput: true,
		Result:           p,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(fields)
}
