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

package builder

import (
	"context"
	"fmt"
	"os"

	"github.com/veilio/veil/internal/domains"
	"github.com/veilio/veil/internal/storages"
	"github.com/veilio/veil/internal/storages/directory"
	"github.com/veilio/veil/internal/storages/s3"
)

func GetStorage(ctx context.Context, stCfg *domains.StorageConfig, logCfg *domains.LogConfig) (
	storages.Storager, error,
) {
	storageType := stCfg.Type
	if envCfg := os.Getenv("STORAGE_TYPE"); envCfg != "" {
		storageType = envCfg
	}

	switch storageType {
	case "directory":
		cfg := stCfg.Directory
		if cfg == nil {
			cfg = &directory.Config{Path: os.Getenv("STORAGE_DIRECTORY_PATH")}
		}
		return directory.NewStorage(cfg)
	case "s3":
		cfg := stCfg.S3
		if cfg == nil {
			cfg = s3.NewConfig()
		}
		return s3.NewStorage(ctx, cfg, logCfg.Level)
	default:
		return nil, fmt.Errorf("unknown storage type %q", storageType)
	}
}
