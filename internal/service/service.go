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

package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/veilio/veil/internal/domains"
	"github.com/veilio/veil/internal/storages"
	"github.com/veilio/veil/internal/tabular"
)

// The extension table is the only place a file extension is bound to a
// parser format; new formats are added by extending it.
var formatsByExtension = map[string]tabular.Format{
	"csv":     tabular.FormatCsv,
	"json":    tabular.FormatJson,
	"parquet": tabular.FormatParquet,
}

// FormatForKey derives the source format from the object key's file
// extension.
func FormatForKey(key string) (tabular.Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(key), "."))
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", fmt.Errorf("%w: file extension %q", tabular.ErrUnsupportedFormat, ext)
	}
	return format, nil
}

type RunOptions struct {
	// TargetFormat re-encodes the output; empty keeps the source format.
	TargetFormat string
	// ChunkSize overrides the configured batch row bound when positive.
	ChunkSize int
	// DryRun returns the obfuscated buffer instead of persisting it.
	DryRun bool
}

type Result struct {
	// OutputKey is set when the result was persisted to storage.
	OutputKey string
	// Data is set on dry runs.
	Data *bytes.Buffer
}

// Service drives one obfuscation request end to end: read the object,
// stream it through the masking pipeline and persist (or return) the
// result. Each call is independent; the service keeps no state across
// invocations.
type Service struct {
	st  storages.Storager
	cfg domains.PipelineConfig
}

func New(st storages.Storager, cfg domains.PipelineConfig) *Service {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = tabular.DefaultChunkSize
	}
	if cfg.StagingSegment == "" {
		cfg.StagingSegment = domains.DefaultStagingSegment
	}
	if cfg.ProcessedSegment == "" {
		cfg.ProcessedSegment = domains.DefaultProcessedSegment
	}
	return &Service{st: st, cfg: cfg}
}

func (s *Service) Run(ctx context.Context, d *Descriptor, opts RunOptions) (*Result, error) {
	source, err := FormatForKey(d.Key)
	if err != nil {
		return nil, err
	}

	target := source
	if opts.TargetFormat != "" {
		target, err = tabular.ParseFormat(opts.TargetFormat)
		if err != nil {
			return nil, err
		}
	}

	chunkSize := s.cfg.ChunkSize
	if opts.ChunkSize > 0 {
		chunkSize = opts.ChunkSize
	}

	reader, err := s.st.GetObject(ctx, d.Key)
	if err != nil {
		return nil, fmt.Errorf("error reading object from storage: %w", err)
	}
	defer reader.Close()
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading object from storage: %w", err)
	}

	log.Debug().
		Str("key", d.Key).
		Str("source_format", source.String()).
		Str("target_format", target.String()).
		Int("size", len(content)).
		Msg("obfuscating object")

	out, err := tabular.Obfuscate(content, d.Fields, source,
		tabular.WithTargetFormat(target),
		tabular.WithChunkSize(chunkSize),
	)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		return &Result{Data: out}, nil
	}

	outputKey := s.outputKey(d.Key, source, target)
	if outputKey == d.Key {
		log.Warn().
			Str("key", d.Key).
			Str("segment", s.cfg.StagingSegment).
			Msg("staging segment not found in key, source object will be overwritten")
	}
	if exists, err := s.st.Exists(ctx, outputKey); err == nil && exists {
		log.Warn().
			Str("key", outputKey).
			Msg("processed object already exists and will be overwritten")
	}
	if err := s.st.PutObject(ctx, outputKey, out); err != nil {
		return nil, fmt.Errorf("error writing object to storage: %w", err)
	}

	log.Info().
		Str("key", outputKey).
		Msg("obfuscated object stored")
	return &Result{OutputKey: outputKey}, nil
}

// outputKey rewrites the first staging segment to the processed segment
// and, when the output format differs from the source, swaps the extension
// so downstream consumers can still derive the format from the key.
func (s *Service) outputKey(key string, source, target tabular.Format) string {
	out := strings.Replace(key, s.cfg.StagingSegment, s.cfg.ProcessedSegment, 1)
	if target != source {
		out = strings.TrimSuffix(out, path.Ext(out)) + "." + target.String()
	}
	return out
}
