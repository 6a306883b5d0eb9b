package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"massnet.org/hashcore/chain"
)

func (a *app) openChain(readOnly bool) (*chain.Chain, error) {
	open := chain.Open
	if readOnly {
		open = chain.OpenReadOnly
	}
	c, err := open(a.cfg.Datastore.DBType, a.cfg.Datastore.Dir, a.cfg.Chain.CacheSize)
	if err != nil {
		if errors.Is(err, chain.ErrChainBroken) {
			return nil, err
		}
		return nil, errors.Wrap(errChainStorage, err.Error())
	}
	return c, nil
}

func newChainCmd(a *app) *cobra.Command {
	chainCmd := &cobra.Command{
		Use:   "chain",
		Short: "Toy block chain linked by SHA-256",
	}

	addCmd := &cobra.Command{
		Use:   "add <data>...",
		Short: "Append a block carrying data",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChain(false)
			if err != nil {
				return err
			}
			defer c.Close()

			b, err := c.AddBlock(strings.Join(args, " "))
			if err != nil {
				return errors.Wrap(errChainStorage, err.Error())
			}
			printBlock(a, b)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print every block",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChain(true)
			if err != nil {
				return err
			}
			defer c.Close()

			blocks, err := c.Blocks()
			if err != nil {
				return errors.Wrap(errChainStorage, err.Error())
			}
			for _, b := range blocks {
				printBlock(a, b)
			}
			return nil
		},
	}

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute every block hash and check the links",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.openChain(true)
			if err != nil {
				return err
			}
			defer c.Close()

			if err = c.Verify(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ok, %d blocks\n", c.Height()+1)
			return nil
		},
	}

	chainCmd.AddCommand(addCmd, listCmd, verifyCmd)
	return chainCmd
}

func printBlock(a *app, b *chain.Block) {
	fmt.Fprintf(a.out, "#%d %v prev %v %s %q\n",
		b.Index, b.Hash(), b.PrevHash, b.Time().UTC().Format(time.RFC3339), b.Data)
}
