package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"massnet.org/hashcore/chain"
	"massnet.org/hashcore/config"
	errcode "massnet.org/hashcore/errors"
	"massnet.org/hashcore/hashutil"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/mac"
	"massnet.org/hashcore/sha256"
	"massnet.org/hashcore/signature"
)

var (
	errUsage        = errors.New("usage")
	errReadInput    = errors.New("read input")
	errConfig       = errors.New("config")
	errLogging      = errors.New("logging")
	errChainStorage = errors.New("chain storage")
	errSelfTest     = errors.New("self test failed")
)

// app carries the state of one invocation.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newApp() *app {
	return &app{
		v:      viper.New(),
		cfg:    config.DefaultConfig(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "SHA-256 built from its primitives, with the tools around it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return errors.Wrap(errConfig, err.Error())
			}
			if err := a.initLogger(); err != nil {
				return errors.Wrap(errLogging, err.Error())
			}
			return nil
		},
	}
	rootCmd.SetOutput(a.out)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(errUsage, err.Error())
	})
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newHashCmd(a),
		newSumCmd(a),
		newTraceCmd(a),
		newMACCmd(a),
		newHMACCmd(a),
		newSignCmd(a),
		newVerifyCmd(a),
		newChainCmd(a),
		newSelfTestCmd(a),
		newBenchCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// Execute runs the command line args and returns the process exit code.
func Execute(args []string) int {
	return execute(newApp(), args)
}

func execute(a *app, args []string) int {
	runtime.GOMAXPROCS(runtime.NumCPU())

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return errcode.ExitOK
	}
	code := exitCode(err)
	fmt.Fprintf(a.errOut, "%s: %v\n", config.AppName, err)
	logging.VPrint(logging.ERROR, "command failed", logging.LogFormat{
		"args": args,
		"err":  err,
		"code": code,
	})
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return errcode.ExitOK
	case errors.Is(err, errUsage),
		errors.Is(err, sha256.ErrInvalidInputKind),
		errors.Is(err, sha256.ErrBitLength),
		errors.Is(err, hashutil.ErrInvalidHashLength):
		return errcode.ExitInvalidInput
	case errors.Is(err, errReadInput):
		return errcode.ExitReadInput
	case errors.Is(err, errConfig):
		return errcode.ExitConfig
	case errors.Is(err, errLogging):
		return errcode.ExitLogging
	case errors.Is(err, chain.ErrChainBroken),
		errors.Is(err, chain.ErrDuplicateBlock),
		errors.Is(err, chain.ErrEmptyChain):
		return errcode.ExitChainBroken
	case errors.Is(err, errChainStorage):
		return errcode.ExitChainStorage
	case errors.Is(err, mac.ErrMACMismatch):
		return errcode.ExitMACMismatch
	case errors.Is(err, signature.ErrInvalidSignature),
		errors.Is(err, signature.ErrInvalidPubKey):
		return errcode.ExitInvalidSignature
	case errors.Is(err, errSelfTest):
		return errcode.ExitSelfTest
	default:
		return errcode.ExitFailure
	}
}

// usageArgs wraps a cobra positional args check so that its failures
// exit with ExitInvalidInput.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return errors.Wrap(errUsage, err.Error())
		}
		return nil
	}
}
