package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/chainsafe/bridge-swap/pkg/auth"
	"github.com/chainsafe/bridge-swap/pkg/bls"
	"github.com/chainsafe/bridge-swap/pkg/bridge"
)

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "blstool",
		Short:         "Signer and caller tooling for bridged",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(keygenCommand(), signCommand(), tokenCommand())
	return root
}

func keygenCommand() *cobra.Command {
	var seed string
	c := &cobra.Command{
		Use:   "keygen",
		Short: "Generates a BLS12-381 key pair",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			sk, err := newKey(seed)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), map[string]hexutil.Bytes{
				"secret_key": sk.Bytes(),
				"public_key": sk.PublicKey().Bytes(),
			})
		},
	}
	c.Flags().StringVar(&seed, "seed", "", "derive the key from this hex seed (at least 32 bytes)")
	return c
}

func newKey(seed string) (*bls.SecretKey, error) {
	if seed == "" {
		return bls.GenerateKey(nil)
	}
	raw, err := hexutil.Decode(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return bls.KeyFromSeed(raw)
}

// signCommand prints a body ready to POST to /api/v1/bridge/mint, minus the tx id.
func signCommand() *cobra.Command {
	var (
		key, user, amount string
		nonce             uint64
	)
	c := &cobra.Command{
		Use:   "sign",
		Short: "Signs the canonical swap event for a mint",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			body, err := signMint(key, user, amount, nonce)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), body)
		},
	}
	flags := c.Flags()
	flags.StringVar(&key, "key", "", "hex secret key")
	flags.StringVar(&user, "user", "", "hex user to credit")
	flags.StringVar(&amount, "amount", "", "base-10 amount")
	flags.Uint64Var(&nonce, "nonce", 0, "counterpart event nonce")
	_ = c.MarkFlagRequired("key")
	_ = c.MarkFlagRequired("user")
	_ = c.MarkFlagRequired("amount")
	return c
}

func signMint(key, user, amount string, nonce uint64) (map[string]hexutil.Bytes, error) {
	rawKey, err := hexutil.Decode(key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	sk, err := bls.SecretKeyFromBytes(rawKey)
	if err != nil {
		return nil, err
	}
	rawUser, err := hexutil.Decode(user)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	amt, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}

	msg, err := bridge.EncodeSwapEvent(&bridge.SwapEvent{User: rawUser, Amount: amt, Nonce: nonce})
	if err != nil {
		return nil, err
	}
	sig, err := sk.Sign(msg)
	if err != nil {
		return nil, err
	}
	return map[string]hexutil.Bytes{
		"public_key": sk.PublicKey().Bytes(),
		"message":    msg,
		"signature":  sig.Bytes(),
	}, nil
}

func tokenCommand() *cobra.Command {
	var (
		secret, subject, issuer string
		ttl                     time.Duration
	)
	c := &cobra.Command{
		Use:   "token",
		Short: "Issues an HS256 caller token",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			signed, err := auth.NewValidator(secret, issuer).Issue(subject, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.OutOrStdout(), signed)
			return err
		},
	}
	flags := c.Flags()
	flags.StringVar(&secret, "secret", "", "shared HS256 secret (auth.jwt_secret)")
	flags.StringVar(&subject, "subject", "", "caller account")
	flags.StringVar(&issuer, "issuer", "", "issuer claim")
	flags.DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = c.MarkFlagRequired("secret")
	_ = c.MarkFlagRequired("subject")
	return c
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
