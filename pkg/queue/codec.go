package queue

import (
	"encoding/base64"
	"fmt"

	"github.com/yvasiyarov/php_session_decoder/php_serialize"
)

// Parameter payloads cross a process boundary as a single argv element, so
// the wire form is PHP serialize() output wrapped in base64. The PHP format
// keeps payloads interoperable with PHP-side producers of the same jobs.

// CodecError reports a malformed or truncated parameter payload. Workers
// treat it as fatal and exit non-zero rather than run with partial arguments.
type CodecError struct {
	Cause error
}

func (e *CodecError) Error() string {
	return "queue: decode parameters: " + e.Cause.Error()
}

func (e *CodecError) Unwrap() error { return e.Cause }

// EncodeParameters serializes an ordered argument list into a string safe to
// embed as one process argument.
func EncodeParameters(params []any) (string, error) {
	arr := make(php_serialize.PhpArray, len(params))
	for i, p := range params {
		v, err := toPhpValue(p)
		if err != nil {
			return "", err
		}
		arr[i] = v
	}

	encoder := php_serialize.NewSerializer()
	serialized, err := encoder.Encode(arr)
	if err != nil {
		return "", fmt.Errorf("queue: encode parameters: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(serialized)), nil
}

// DecodeParameters reverses EncodeParameters. Argument order is carried by
// the integer array keys, not by serialization order.
func DecodeParameters(payload string) ([]any, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &CodecError{Cause: err}
	}

	value, err := php_serialize.UnSerialize(string(raw))
	if err != nil {
		return nil, &CodecError{Cause: err}
	}

	arr, ok := value.(php_serialize.PhpArray)
	if !ok {
		return nil, &CodecError{Cause: fmt.Errorf("payload is not an argument list (%T)", value)}
	}

	params, ok := denseList(arr)
	if !ok {
		return nil, &CodecError{Cause: fmt.Errorf("argument list has non-sequential keys")}
	}
	return params, nil
}

// toPhpValue normalizes a Go value into something the PHP serializer handles.
func toPhpValue(v any) (php_serialize.PhpValue, error) {
	switch t := v.(type) {
	case nil, bool, int, float64, string:
		return t, nil
	case int64:
		return int(t), nil
	case int8:
		return int(t), nil
	case int16:
		return int(t), nil
	case int32:
		return int(t), nil
	case uint:
		return int(t), nil
	case uint8:
		return int(t), nil
	case uint16:
		return int(t), nil
	case uint32:
		return int(t), nil
	case float32:
		return float64(t), nil
	case []any:
		arr := make(php_serialize.PhpArray, len(t))
		for i, e := range t {
			pv, err := toPhpValue(e)
			if err != nil {
				return nil, err
			}
			arr[i] = pv
		}
		return arr, nil
	case map[string]any:
		arr := make(php_serialize.PhpArray, len(t))
		for k, e := range t {
			pv, err := toPhpValue(e)
			if err != nil {
				return nil, err
			}
			arr[k] = pv
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("queue: unsupported parameter type %T", v)
	}
}

// fromPhpValue maps decoded PHP values back onto the Go shapes accepted by
// EncodeParameters. Arrays with dense integer keys become slices, everything
// else becomes a string-keyed map.
func fromPhpValue(v php_serialize.PhpValue) any {
	arr, ok := v.(php_serialize.PhpArray)
	if !ok {
		return v
	}
	if list, dense := denseList(arr); dense {
		return list
	}
	m := make(map[string]any, len(arr))
	for k, e := range arr {
		m[fmt.Sprint(k)] = fromPhpValue(e)
	}
	return m
}

func denseList(arr php_serialize.PhpArray) ([]any, bool) {
	list := make([]any, len(arr))
	for i := range list {
		v, ok := arr[i]
		if !ok {
			return nil, false
		}
		list[i] = fromPhpValue(v)
	}
	return list, true
}
