package cmd

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"massnet.org/hashcore/batch"
	"massnet.org/hashcore/hashutil"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/sha256"
)

// stdinArg stands for standard input in place of a message argument.
const stdinArg = "-"

func newHashCmd(a *app) *cobra.Command {
	var (
		double bool
		isHex  bool
		bits   uint64
	)
	cmd := &cobra.Command{
		Use:   "hash <text|->...",
		Short: "Print the SHA-256 digest of each argument",
		Long: `Print the SHA-256 digest of each argument, one per line.
An argument of "-" hashes standard input. With --hex the arguments are
hex encoded bytes, and --bits hashes only their leading bits.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("bits") && !isHex {
				return errors.Wrap(errUsage, "--bits requires --hex")
			}
			for _, arg := range args {
				digest, err := a.digestArg(arg, isHex, cmd.Flags().Changed("bits"), bits)
				if err != nil {
					return err
				}
				if double {
					digest = hashutil.SHA256(digest[:])
				}
				fmt.Fprintln(a.out, digest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&double, "double", "d", false, "print SHA256(SHA256(message))")
	cmd.Flags().BoolVar(&isHex, "hex", false, "arguments are hex encoded")
	cmd.Flags().Uint64Var(&bits, "bits", 0, "message length in bits, with --hex")
	return cmd
}

func (a *app) digestArg(arg string, isHex, useBits bool, bits uint64) (hashutil.Hash, error) {
	if arg == stdinArg {
		h, err := batch.SumReader(a.in)
		if err != nil {
			return h, errors.Wrap(errReadInput, err.Error())
		}
		return h, nil
	}
	if !isHex {
		s, err := sha256.Hash(arg)
		if err != nil {
			return hashutil.Hash{}, err
		}
		return hashutil.DecodeStringToHash(s)
	}

	data, err := hex.DecodeString(arg)
	if err != nil {
		return hashutil.Hash{}, errors.Wrap(errUsage, err.Error())
	}
	if !useBits {
		return hashutil.SHA256(data), nil
	}
	sum, err := sha256.SumBits(data, bits)
	if err != nil {
		return hashutil.Hash{}, err
	}
	return sum, nil
}

func newSumCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sum <file>...",
		Short: "Print the SHA-256 digest of files, like sha256sum",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := batch.NewHasher(a.cfg.Worker.Workers, int64(a.cfg.Worker.StreamThreshold))
			if err != nil {
				return err
			}
			defer h.Close()

			failed := 0
			err = h.Each(context.Background(), args, func(r *batch.Result) error {
				if r.Err != nil {
					failed++
					fmt.Fprintln(a.errOut, r)
					logging.VPrint(logging.WARN, "fail to hash file", logging.LogFormat{"file": r.Name, "err": r.Err})
					return nil
				}
				fmt.Fprintln(a.out, r)
				return nil
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return errors.Wrapf(errReadInput, "%d of %d files", failed, len(args))
			}
			return nil
		},
	}
}

var traceConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func newTraceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trace <text>",
		Short: "Dump the padded blocks, message schedules and states of one hash",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			traces, err := sha256.Trace([]byte(args[0]))
			if err != nil {
				return err
			}
			for i := range traces {
				fmt.Fprintf(a.out, "block %d of %d\n", i+1, len(traces))
				traceConfig.Fdump(a.out, traces[i])
			}
			out := traces[len(traces)-1].Out
			fmt.Fprintf(a.out, "digest %x\n", out.Bytes())
			return nil
		},
	}
}
