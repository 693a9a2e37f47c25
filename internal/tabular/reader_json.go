// Copyright 2025 Veil
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tabular

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

type jsonReader struct {
	dec       *json.Decoder
	chunkSize int
	columns   []string
	started   bool
	done      bool
}

// NewJSONReader treats the content as an array of flat objects and reads
// the items one token at a time, so a large array is never materialized at
// once. The field order of the first object fixes the column order for the
// whole stream.
func NewJSONReader(r io.Reader, chunkSize int) BatchReader {
	return &jsonReader{dec: json.NewDecoder(r), chunkSize: chunkSize}
}

func (j *jsonReader) Next() (*Batch, error) {
	if j.done {
		return nil, io.EOF
	}
	if !j.started {
		tok, err := j.dec.Token()
		if err == io.EOF {
			j.done = true
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			return nil, fmt.Errorf("%w: expected a JSON array of objects", ErrMalformedInput)
		}
		j.started = true
	}

	rows := make([][]string, 0, j.chunkSize)
	for len(rows) < j.chunkSize && j.dec.More() {
		var item json.RawMessage
		if err := j.dec.Decode(&item); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		row, err := j.itemToRow(item)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if !j.dec.More() {
		// Consume the closing bracket so a truncated array surfaces as an
		// error rather than a silently short sequence.
		if _, err := j.dec.Token(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		j.done = true
	}
	if len(rows) == 0 {
		return nil, io.EOF
	}
	return &Batch{Columns: j.columns, Rows: rows}, nil
}

func (j *jsonReader) itemToRow(item json.RawMessage) ([]string, error) {
	obj := gjson.ParseBytes(item)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: array items must be flat objects", ErrMalformedInput)
	}
	if j.columns == nil {
		obj.ForEach(func(key, _ gjson.Result) bool {
			j.columns = append(j.columns, key.String())
			return true
		})
	}
	values := make(map[string]string, len(j.columns))
	obj.ForEach(func(key, value gjson.Result) bool {
		values[key.String()] = value.String()
		return true
	})
	row := make([]string, len(j.columns))
	for i, col := range j.columns {
		row[i] = values[col]
	}
	return row, nil
}
