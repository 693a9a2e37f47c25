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

package domains

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/veilio/veil/internal/storages/directory"
	"github.com/veilio/veil/internal/storages/s3"
	"github.com/veilio/veil/internal/tabular"
)

const (
	defaultStorageType = "s3"

	// DefaultStagingSegment and DefaultProcessedSegment name the path
	// segments rewritten to form the output key of a processed object.
	DefaultStagingSegment   = "new_data"
	DefaultProcessedSegment = "processed_data"
)

var (
	Cfg  *Config
	once sync.Once
)

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

type LogConfig struct {
	Format string `mapstructure:"format"`
	Level  string `mapstructure:"level"`
}

type StorageConfig struct {
	Type      string            `mapstructure:"type"`
	S3        *s3.Config        `mapstructure:"s3,omitempty"`
	Directory *directory.Config `mapstructure:"directory,omitempty"`
}

type PipelineConfig struct {
	ChunkSize        int    `mapstructure:"chunk_size,omitempty"`
	StagingSegment   string `mapstructure:"staging_segment,omitempty"`
	ProcessedSegment string `mapstructure:"processed_segment,omitempty"`
}

func NewConfig() *Config {
	once.Do(
		func() {
			Cfg = &Config{
				Log: LogConfig{
					Format: "text",
					Level:  zerolog.LevelInfoValue,
				},
				Storage: StorageConfig{
					Type: defaultStorageType,
					S3:   s3.NewConfig(),
				},
				Pipeline: PipelineConfig{
					ChunkSize:        tabular.DefaultChunkSize,
					StagingSegment:   DefaultStagingSegment,
					ProcessedSegment: DefaultProcessedSegment,
				},
			}
		},
	)
	return Cfg
}
