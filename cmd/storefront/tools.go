package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/dwikikusuma/printshop/internal/cart/domain"
	uploaddomain "github.com/dwikikusuma/printshop/internal/upload/domain"
)

func newFingerprintCmd() *cobra.Command {
	var cfg domain.Configuration
	var slug string

	cmd := &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the cart item id for a product configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if slug == "" {
				return errors.New("--slug is required")
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.ItemID(slug, cfg))
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Product slug")
	cmd.Flags().StringVar(&cfg.Format, "format", "", "Format, e.g. A5")
	cmd.Flags().StringVar(&cfg.Paper, "paper", "", "Paper, e.g. gloss-130")
	cmd.Flags().StringVar(&cfg.Colors, "colors", "", "Colors, e.g. 4/4")
	cmd.Flags().StringSliceVar(&cfg.Finishings, "finishing", nil, "Finishing (repeatable)")
	return cmd
}

// sniffLen matches what the upload service inspects.
const sniffLen = 3072

func newCheckFileCmd() *cobra.Command {
	var maxBytes int64
	fs := afero.NewOsFs()

	cmd := &cobra.Command{
		Use:   "check-file <path>",
		Short: "Run the upload checks against a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkFile(cmd.OutOrStdout(), fs, args[0], maxBytes)
		},
	}

	cmd.Flags().Int64Var(&maxBytes, "max-bytes", uploaddomain.DefaultMaxBytes, "Size ceiling in bytes")
	return cmd
}

func checkFile(out io.Writer, fs afero.Fs, path string, maxBytes int64) error {
	info, err := fs.Stat(path)
	if err != nil {
		return err
	}
	if res := uploaddomain.ValidateFile(info.Name(), info.Size(), maxBytes); !res.OK {
		return errors.New(res.Message)
	}

	f, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if res := uploaddomain.ValidateContent(info.Name(), head[:n]); !res.OK {
		return errors.New(res.Message)
	}

	fmt.Fprintf(out, "%s: ok (%d bytes)\n", info.Name(), info.Size())
	return nil
}
