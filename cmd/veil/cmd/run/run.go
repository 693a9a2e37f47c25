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

package run

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/veilio/veil/internal/domains"
	"github.com/veilio/veil/internal/service"
	"github.com/veilio/veil/internal/storages/builder"
	"github.com/veilio/veil/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "run <descriptor>",
		Short: "obfuscate one object described by a JSON descriptor",
		Long: "Takes a JSON descriptor with \"file_to_obfuscate\" and " +
			"\"pii_fields\", reads the object, masks the fields and stores " +
			"the result in the processed area. Pass @path to read the " +
			"descriptor from a file",
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.Level, Config.Log.Format); err != nil {
				log.Fatal().Err(err).Msg("")
			}

			descriptorData, err := readDescriptorArg(args[0])
			if err != nil {
				log.Fatal().Err(err).Msg("cannot read descriptor")
			}

			d, err := service.ParseDescriptor(descriptorData)
			if err != nil {
				log.Fatal().Err(err).Msg("cannot parse descriptor")
			}

			// The descriptor names the bucket; the config may leave it
			// empty and defer to the request.
			if Config.Storage.S3 != nil && Config.Storage.S3.Bucket == "" {
				Config.Storage.S3.Bucket = d.Bucket
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			st, err := builder.GetStorage(ctx, &Config.Storage, &Config.Log)
			if err != nil {
				log.Fatal().Err(err).Msg("fatal")
			}

			svc := service.New(st, Config.Pipeline)
			result, err := svc.Run(ctx, d, service.RunOptions{
				TargetFormat: outputFormat,
				ChunkSize:    chunkSize,
				DryRun:       dryRun,
			})
			if err != nil {
				log.Fatal().Err(err).Msg("cannot obfuscate object")
			}

			if dryRun {
				if _, err := result.Data.WriteTo(os.Stdout); err != nil {
					log.Fatal().Err(err).Msg("cannot write result to stdout")
				}
			}
		},
	}
	Config = domains.NewConfig()

	outputFormat string
	chunkSize    int
	dryRun       bool
)

func init() {
	Cmd.Flags().StringVarP(&outputFormat, "output-format", "o", "",
		"re-encode the output into this format [csv|json|parquet], defaults to the source format")
	Cmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", 0,
		"number of rows processed per batch, defaults to the configured pipeline.chunk_size")
	Cmd.Flags().BoolVarP(&dryRun, "dry-run", "", false,
		"print the obfuscated object to stdout instead of storing it")
}

func readDescriptorArg(arg string) ([]byte, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		return os.ReadFile(name)
	}
	return []byte(arg), nil
}
