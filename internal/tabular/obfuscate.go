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
	"bytes"
	"fmt"
	"io"
)

// DefaultChunkSize bounds the number of records held in memory per
// streaming step when the caller does not override it.
const DefaultChunkSize = 5000

type pipelineOptions struct {
	targetFormat Format
	chunkSize    int
}

type Option func(*pipelineOptions)

// WithTargetFormat re-encodes the obfuscated output into the given format.
// By default the output format matches the source format.
func WithTargetFormat(f Format) Option {
	return func(o *pipelineOptions) { o.targetFormat = f }
}

// WithChunkSize overrides DefaultChunkSize. The value trades memory for
// per-batch latency; there is no enforced upper bound.
func WithChunkSize(n int) Option {
	return func(o *pipelineOptions) { o.chunkSize = n }
}

// The reader table is the single place where a format is bound to a parser;
// new formats are added here.
var readerFactories = map[Format]func(content []byte, chunkSize int) (BatchReader, error){
	FormatCsv: func(content []byte, chunkSize int) (BatchReader, error) {
		return NewCSVReader(bytes.NewReader(content), chunkSize), nil
	},
	FormatJson: func(content []byte, chunkSize int) (BatchReader, error) {
		return NewJSONReader(bytes.NewReader(content), chunkSize), nil
	},
	FormatParquet: func(content []byte, chunkSize int) (BatchReader, error) {
		return NewParquetReader(bytes.NewReader(content), int64(len(content)), chunkSize)
	},
}

// Obfuscate streams the content in chunkSize-bounded row batches, replaces
// every value of the named fields with MaskValue and returns the result as
// a buffer positioned at its start. The streaming phase always produces a
// CSV intermediate; when the resolved target format is not csv the
// intermediate is re-encoded wholesale afterwards.
//
// Any failure mid-stream aborts the whole call: no partially written output
// is ever returned as a success.
func Obfuscate(content []byte, fields []string, source Format, opts ...Option) (*bytes.Buffer, error) {
	options := pipelineOptions{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(&options)
	}

	if err := source.Validate(); err != nil {
		return nil, err
	}
	if options.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrConfiguration, options.chunkSize)
	}

	target := options.targetFormat
	if target == "" {
		target = source
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	reader, err := readerFactories[source](content, options.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("error processing data chunk: %w", err)
	}

	var intermediate bytes.Buffer
	writer := NewChunkWriter(&intermediate)
	isFirst := true
	for {
		batch, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error processing data chunk: %w", err)
		}
		if err := MaskBatch(batch, fields); err != nil {
			return nil, fmt.Errorf("error processing data chunk: %w", err)
		}
		if err := writer.Write(batch, isFirst); err != nil {
			return nil, fmt.Errorf("error processing data chunk: %w", err)
		}
		isFirst = false
	}

	if target == FormatCsv {
		return &intermediate, nil
	}
	converted, err := Convert(intermediate.Bytes(), target)
	if err != nil {
		return nil, fmt.Errorf("error reading the file: %w", err)
	}
	return converted, nil
}
