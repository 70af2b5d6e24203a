package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"requestScope/internal/chain"
)

func runAddress(cmd *cobra.Command, args []string) error {
	return renderAddress(cmd.OutOrStdout(), args[0])
}

// renderAddress prints the chain an address belongs to, its 32-byte public key and
// the C3 account address, which is the Algorand encoding of that key.
func renderAddress(w io.Writer, address string) error {
	address = strings.TrimSpace(address)
	id, _, err := chain.CodecForAddress(address)
	if err != nil {
		return err
	}
	publicKey, err := chain.PublicKeyFromAddress(address)
	if err != nil {
		return err
	}
	c3Address, err := chain.AlgorandAddress(publicKey)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Chain\t%d - %s\n", uint16(id), id)
	fmt.Fprintf(tw, "Public Key\t%s\n", hexutil.Encode(publicKey))
	fmt.Fprintf(tw, "C3 Address\t%s\n", c3Address)
	return tw.Flush()
}
