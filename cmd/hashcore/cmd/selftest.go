package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/spf13/cobra"

	"massnet.org/hashcore/hashutil"
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/mac"
	"massnet.org/hashcore/sha256"
)

type knownAnswer struct {
	name string
	msg  func() []byte
	want string
}

func text(s string) func() []byte {
	return func() []byte { return []byte(s) }
}

var knownAnswers = []knownAnswer{
	{"empty", text(""), "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{"abc", text("abc"), "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	{"test hash256", text("test hash256"), "de8503647d0760bbabc8bf47526176bd1046afa9f5f20d8831d0ff455cee0523"},
	{"nist 448 bit", text("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"),
		"248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
	{"nist 896 bit", text("abcdefghbcdefghicdefghijdefghijkefghijklfghijklmghijklmnhijklmnoijklmnopjklmnopqklmnopqrlmnopqrsmnopqrstnopqrstu"),
		"cf5b16a778af8380036ce59e7b0492370b249b11e8f07a51afac45037afee9d1"},
	{"million a", func() []byte { return []byte(strings.Repeat("a", 1000000)) },
		"cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0"},
}

// paddedBlocks lists message bit lengths next to the block count their
// padding must produce.
var paddedBlocks = []struct {
	bits   uint64
	blocks int
}{
	{0, 1}, {439, 1}, {440, 1}, {447, 1}, {448, 2}, {511, 2}, {512, 2}, {959, 2}, {960, 3},
}

// runSelfTest reports every check to report and returns the number of
// failures.
func runSelfTest(report func(ok bool, name string)) int {
	failed := 0
	check := func(ok bool, name string) {
		if !ok {
			failed++
		}
		report(ok, name)
	}

	for _, ka := range knownAnswers {
		msg := ka.msg()
		sum := sha256.Sum256(msg)
		check(hex.EncodeToString(sum[:]) == ka.want, "sum256 "+ka.name)

		d := sha256.New()
		for i := 0; i < len(msg); i += 1000 {
			end := i + 1000
			if end > len(msg) {
				end = len(msg)
			}
			d.Write(msg[i:end])
		}
		check(hex.EncodeToString(d.Sum(nil)) == ka.want, "stream "+ka.name)
	}

	for _, pb := range paddedBlocks {
		blocks, err := sha256.PadBits(make([]byte, (pb.bits+7)/8), pb.bits)
		check(err == nil && len(blocks) == pb.blocks, fmt.Sprintf("padding %d bits", pb.bits))
	}

	_, err := sha256.Hash(42)
	check(errors.Is(err, sha256.ErrInvalidInputKind), "reject non text input")

	// RFC 4231 case 2
	tag := mac.HMAC([]byte("Jefe"), []byte("what do ya want for nothing?"))
	check(hex.EncodeToString(tag[:]) == "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843", "hmac rfc 4231")

	d := hashutil.DoubleSHA256([]byte("test hash256"))
	check(d.String() == "cb43cc5fc9e305ddf8fccc2112629da4d21fc840937b785e86d4a220406359a8", "double sha256")
	return failed
}

func newSelfTestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the known-answer tests",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := runSelfTest(func(ok bool, name string) {
				status := "ok  "
				if !ok {
					status = "FAIL"
				}
				fmt.Fprintf(a.out, "%s %s\n", status, name)
			})
			logging.VPrint(logging.INFO, "self test finished", logging.LogFormat{"failed": failed})
			if failed > 0 {
				return errors.Wrapf(errSelfTest, "%d checks", failed)
			}
			return nil
		},
	}
}

var benchSizes = []int{64, 1024, 8192, 1 << 20}

func newBenchCmd(a *app) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure hashing throughput by message size",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			printHostInfo(a)
			for _, size := range benchSizes {
				n, elapsed := benchSum256(size, duration)
				mbps := float64(n) * float64(size) / elapsed.Seconds() / (1 << 20)
				fmt.Fprintf(a.out, "%8d bytes  %10d ops  %8.2f MiB/s\n", size, n, mbps)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 200*time.Millisecond, "time spent on each message size")
	return cmd
}

func benchSum256(size int, duration time.Duration) (int, time.Duration) {
	msg := make([]byte, size)
	start := time.Now()
	n := 0
	for {
		sha256.Sum256(msg)
		n++
		if elapsed := time.Since(start); elapsed >= duration {
			return n, elapsed
		}
	}
}

func printHostInfo(a *app) {
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		fmt.Fprintf(a.out, "cpu     %s\n", infos[0].ModelName)
	} else if err != nil {
		logging.VPrint(logging.WARN, "fail to read cpu info", logging.LogFormat{"err": err})
	}
	if cores, err := cpu.Counts(true); err == nil {
		fmt.Fprintf(a.out, "threads %d\n", cores)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		fmt.Fprintf(a.out, "memory  %d MiB\n", vm.Total>>20)
	}
}
