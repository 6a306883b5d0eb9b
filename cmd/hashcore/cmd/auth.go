package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"massnet.org/hashcore/mac"
	"massnet.org/hashcore/signature"
)

func decodeHexFlag(name, value string) ([]byte, error) {
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(errUsage, "--%s: %v", name, err)
	}
	return b, nil
}

// newTagCmd builds a command printing tag(key, message), or checking it
// against --verify.
func newTagCmd(a *app, use, short string, tag func(key, msg []byte) [mac.Size]byte,
	verify func(key, msg, tag []byte) error) *cobra.Command {
	var key, expect string
	cmd := &cobra.Command{
		Use:   use + " --key <key> <text>",
		Short: short,
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := []byte(args[0])
			if expect == "" {
				t := tag([]byte(key), msg)
				fmt.Fprintln(a.out, hex.EncodeToString(t[:]))
				return nil
			}
			want, err := decodeHexFlag("verify", expect)
			if err != nil {
				return err
			}
			if err = verify([]byte(key), msg, want); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "secret key")
	cmd.Flags().StringVar(&expect, "verify", "", "hex tag to check instead of printing one")
	cmd.MarkFlagRequired("key")
	return cmd
}

func newMACCmd(a *app) *cobra.Command {
	return newTagCmd(a, "mac", "Keyed hash SHA256(key || text)", mac.Prefix, mac.VerifyPrefix)
}

func newHMACCmd(a *app) *cobra.Command {
	return newTagCmd(a, "hmac", "HMAC-SHA256 of text", mac.HMAC, mac.VerifyHMAC)
}

func newSignCmd(a *app) *cobra.Command {
	var keyHex string
	cmd := &cobra.Command{
		Use:   "sign [--key <hex>] <text>",
		Short: "Sign the SHA-256 digest of text with a secp256k1 key",
		Long: `Sign the SHA-256 digest of text with a secp256k1 key. Without --key a
new key is generated and printed.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var priv *btcec.PrivateKey
			if keyHex == "" {
				var err error
				if priv, err = signature.NewPrivateKey(); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "privkey   %x\n", priv.Serialize())
			} else {
				b, err := decodeHexFlag("key", keyHex)
				if err != nil {
					return err
				}
				if len(b) != btcec.PrivKeyBytesLen {
					return errors.Wrapf(errUsage, "--key: %d bytes, want %d", len(b), btcec.PrivKeyBytesLen)
				}
				priv, _ = btcec.PrivKeyFromBytes(btcec.S256(), b)
			}

			sig, err := signature.Sign(priv, []byte(args[0]))
			if err != nil {
				return err
			}
			keyID := signature.KeyID(priv.PubKey())
			fmt.Fprintf(a.out, "pubkey    %x\n", priv.PubKey().SerializeCompressed())
			fmt.Fprintf(a.out, "keyid     %x\n", keyID)
			fmt.Fprintf(a.out, "signature %x\n", sig)
			return nil
		},
	}
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "hex private key")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var pubHex, sigHex string
	cmd := &cobra.Command{
		Use:   "verify --pubkey <hex> --sig <hex> <text>",
		Short: "Verify a secp256k1 signature over the SHA-256 digest of text",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := decodeHexFlag("pubkey", pubHex)
			if err != nil {
				return err
			}
			sig, err := decodeHexFlag("sig", sigHex)
			if err != nil {
				return err
			}
			if err = signature.Verify(pub, []byte(args[0]), sig); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&pubHex, "pubkey", "", "hex public key")
	cmd.Flags().StringVar(&sigHex, "sig", "", "hex DER signature")
	cmd.MarkFlagRequired("pubkey")
	cmd.MarkFlagRequired("sig")
	return cmd
}
