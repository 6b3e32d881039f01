package tfrecord

import (
	"sort"

	"github.com/bgokden/skynet-tfrecords/models"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Feature keys read by the training input pipeline
const (
	KeyHeight   = "height"
	KeyWidth    = "width"
	KeyImageRaw = "image_raw"
	KeyLabelRaw = "label_raw"
)

// Field numbers from tensorflow/core/example/{example,feature}.proto
const (
	exampleFeatures protowire.Number = 1
	featuresFeature protowire.Number = 1
	mapKey          protowire.Number = 1
	mapValue        protowire.Number = 2
	featureBytes    protowire.Number = 1
	featureInt64    protowire.Number = 3
	listValue       protowire.Number = 1
)

// Feature holds one tf.train.Feature. Only one of the lists is expected to be set.
// float_list features are skipped when decoding.
type Feature struct {
	Bytes  [][]byte
	Int64s []int64
}

func Int64Feature(v int64) Feature {
	return Feature{Int64s: []int64{v}}
}

func BytesFeature(v []byte) Feature {
	return Feature{Bytes: [][]byte{v}}
}

// MarshalExample serializes a sample as a tf.train.Example
func MarshalExample(s *models.Sample) []byte {
	return MarshalFeatures(map[string]Feature{
		KeyHeight:   Int64Feature(s.Height),
		KeyWidth:    Int64Feature(s.Width),
		KeyImageRaw: BytesFeature(s.ImageRaw),
		KeyLabelRaw: Int64Feature(s.Label),
	})
}

// MarshalFeatures serializes a tf.train.Example with the given feature map.
// Keys are written in sorted order.
func MarshalFeatures(features map[string]Feature) []byte {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var featuresMsg []byte
	for _, k := range keys {
		var entry []byte
		entry = protowire.AppendTag(entry, mapKey, protowire.BytesType)
		entry = protowire.AppendString(entry, k)
		entry = protowire.AppendTag(entry, mapValue, protowire.BytesType)
		entry = protowire.AppendBytes(entry, marshalFeature(features[k]))

		featuresMsg = protowire.AppendTag(featuresMsg, featuresFeature, protowire.BytesType)
		featuresMsg = protowire.AppendBytes(featuresMsg, entry)
	}

	var example []byte
	example = protowire.AppendTag(example, exampleFeatures, protowire.BytesType)
	example = protowire.AppendBytes(example, featuresMsg)
	return example
}

func marshalFeature(f Feature) []byte {
	var list []byte
	var kind protowire.Number
	switch {
	case f.Bytes != nil:
		kind = featureBytes
		for _, b := range f.Bytes {
			list = protowire.AppendTag(list, listValue, protowire.BytesType)
			list = protowire.AppendBytes(list, b)
		}
	default:
		kind = featureInt64
		var packed []byte
		for _, v := range f.Int64s {
			packed = protowire.AppendVarint(packed, uint64(v))
		}
		list = protowire.AppendTag(list, listValue, protowire.BytesType)
		list = protowire.AppendBytes(list, packed)
	}
	var feature []byte
	feature = protowire.AppendTag(feature, kind, protowire.BytesType)
	feature = protowire.AppendBytes(feature, list)
	return feature
}

// UnmarshalExample decodes a tf.train.Example written by MarshalExample
func UnmarshalExample(b []byte) (*models.Sample, error) {
	features, err := UnmarshalFeatures(b)
	if err != nil {
		return nil, err
	}
	s := &models.Sample{}
	ints := map[string]*int64{KeyHeight: &s.Height, KeyWidth: &s.Width, KeyLabelRaw: &s.Label}
	for key, dst := range ints {
		f, ok := features[key]
		if !ok || len(f.Int64s) != 1 {
			return nil, errors.Errorf("feature %q: expected a single int64", key)
		}
		*dst = f.Int64s[0]
	}
	f, ok := features[KeyImageRaw]
	if !ok || len(f.Bytes) != 1 {
		return nil, errors.Errorf("feature %q: expected a single bytes value", KeyImageRaw)
	}
	s.ImageRaw = f.Bytes[0]
	return s, nil
}

// UnmarshalFeatures decodes the feature map of a serialized tf.train.Example
func UnmarshalFeatures(b []byte) (map[string]Feature, error) {
	features := make(map[string]Feature)
	err := walk(b, func(num protowire.Number, featuresMsg []byte) error {
		if num != exampleFeatures {
			return nil
		}
		return walk(featuresMsg, func(num protowire.Number, entry []byte) error {
			if num != featuresFeature {
				return nil
			}
			key, feature, err := unmarshalEntry(entry)
			if err != nil {
				return err
			}
			features[key] = feature
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "decoding example")
	}
	return features, nil
}

func unmarshalEntry(entry []byte) (string, Feature, error) {
	var key string
	var feature Feature
	err := walk(entry, func(num protowire.Number, v []byte) error {
		switch num {
		case mapKey:
			key = string(v)
		case mapValue:
			f, err := unmarshalFeature(v)
			if err != nil {
				return err
			}
			feature = f
		}
		return nil
	})
	return key, feature, err
}

func unmarshalFeature(b []byte) (Feature, error) {
	var f Feature
	err := walk(b, func(kind protowire.Number, list []byte) error {
		if kind != featureBytes && kind != featureInt64 {
			return nil
		}
		for len(list) > 0 {
			num, typ, n := protowire.ConsumeTag(list)
			if n < 0 {
				return protowire.ParseError(n)
			}
			list = list[n:]
			if num != listValue {
				n = protowire.ConsumeFieldValue(num, typ, list)
				if n < 0 {
					return protowire.ParseError(n)
				}
				list = list[n:]
				continue
			}
			var err error
			list, err = appendListValue(&f, kind, typ, list)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return f, err
}

// appendListValue consumes one packed or unpacked list element from b
func appendListValue(f *Feature, kind protowire.Number, typ protowire.Type, b []byte) ([]byte, error) {
	switch {
	case kind == featureBytes && typ == protowire.BytesType:
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		f.Bytes = append(f.Bytes, append([]byte{}, v...))
		return b[n:], nil
	case kind == featureInt64 && typ == protowire.VarintType:
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		f.Int64s = append(f.Int64s, int64(v))
		return b[n:], nil
	case kind == featureInt64 && typ == protowire.BytesType:
		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		for len(packed) > 0 {
			v, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			f.Int64s = append(f.Int64s, int64(v))
			packed = packed[m:]
		}
		return b[n:], nil
	}
	return nil, errors.Errorf("unexpected wire type %d for feature kind %d", typ, kind)
}

// walk calls fn for every length-delimited field of a message and skips the rest
func walk(b []byte, fn func(num protowire.Number, v []byte) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		if err := fn(num, v); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
