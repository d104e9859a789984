package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	jsoniter "github.com/json-iterator/go"

	"imgresize/internal/preview"
)

// SizeTableKey is the project file property holding the size table.
const SizeTableKey = "imgresize"

var (
	ErrNoSizeTable      = errors.New(`property "imgresize" is missing`)
	ErrMalformedProject = errors.New("malformed project file")
)

// LoadSizeTable reads the size table from the project file at path, keeping
// the key order of the file. A repeated name keeps its first position and
// takes the last value.
func LoadSizeTable(path string) (preview.SizeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSizeTable(data)
}

func ParseSizeTable(data []byte) (preview.SizeTable, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, data)
	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, fmt.Errorf("%w: top level is not an object", ErrMalformedProject)
	}

	var (
		sizes preview.SizeTable
		found bool
	)
	for field := iter.ReadObject(); field != ""; field = iter.ReadObject() {
		if field != SizeTableKey {
			iter.Skip()
			continue
		}
		if iter.WhatIsNext() == jsoniter.NilValue {
			iter.Skip()
			continue
		}
		if iter.WhatIsNext() != jsoniter.ObjectValue {
			return nil, fmt.Errorf("%w: %q is not an object", ErrMalformedProject, SizeTableKey)
		}
		found = true
		sizes = sizes[:0]
		if err := readSizes(iter, &sizes); err != nil {
			return nil, err
		}
	}
	if iter.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProject, iter.Error)
	}
	if !found {
		return nil, ErrNoSizeTable
	}
	if err := sizes.Validate(); err != nil {
		return nil, err
	}
	return sizes, nil
}

func readSizes(iter *jsoniter.Iterator, sizes *preview.SizeTable) error {
	index := make(map[string]int)
	for name := iter.ReadObject(); name != ""; name = iter.ReadObject() {
		if iter.WhatIsNext() != jsoniter.NumberValue {
			return fmt.Errorf("%w: width of %q is not a number", ErrMalformedProject, name)
		}
		w := iter.ReadFloat64()
		if iter.Error != nil {
			return fmt.Errorf("%w: %v", ErrMalformedProject, iter.Error)
		}
		if w != math.Trunc(w) || w < 0 || w > math.MaxInt32 {
			return fmt.Errorf("%w: width of %q must be a non-negative integer", ErrMalformedProject, name)
		}

		if i, ok := index[name]; ok {
			(*sizes)[i].Width = int(w)
			continue
		}
		index[name] = len(*sizes)
		*sizes = append(*sizes, preview.Size{Name: name, Width: int(w)})
	}
	return nil
}
