// Package ledger submits transfer transactions to a Solana-compatible
// RPC endpoint.
package ledger

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog/log"

	"driprun/internal/domain"
	"driprun/internal/ports"
)

type Client struct {
	rpc         *rpc.Client
	maxLamports int64
}

var _ ports.Sender = (*Client)(nil)

func New(endpoint string, maxLamports int64) *Client {
	log.Info().Msgf("using ledger rpc at %s", endpoint)
	return &Client{rpc: rpc.New(endpoint), maxLamports: maxLamports}
}

// Send performs one transfer attempt for the identity: a random lamport
// amount to a freshly generated recipient. Errors are folded into the
// outcome; this call never fails from the retry loop's point of view.
func (c *Client) Send(ctx context.Context, id domain.Identity, attempt int) domain.AttemptOutcome {
	recipient := solana.NewWallet().PublicKey()
	lamports := uint64(rand.Int64N(c.maxLamports) + 1)

	sig, err := c.transfer(ctx, id, recipient, lamports)
	if err != nil {
		detail := err.Error()
		log.Info().Msgf("%s - attempt %d: fail - %s", id.ID, attempt+1, detail)
		return domain.AttemptOutcome{
			LogLine:     fmt.Sprintf("[%s] attempt %d: fail - %s", id.ID, attempt+1, detail),
			ErrorDetail: detail,
		}
	}

	sol := float64(lamports) / float64(solana.LAMPORTS_PER_SOL)
	log.Info().Msgf("%s - attempt %d: success, sent %.9f SOL", id.ID, attempt+1, sol)
	return domain.AttemptOutcome{
		Success: true,
		LogLine: fmt.Sprintf("[%s] attempt %d: success, sent %.9f SOL to %s (%s)",
			id.ID, attempt+1, sol, recipient, sig),
	}
}

func (c *Client) transfer(ctx context.Context, id domain.Identity, to solana.PublicKey, lamports uint64) (solana.Signature, error) {
	payer := solana.PrivateKey(id.PrivateKey)

	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentConfirmed)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, payer.PublicKey(), to).Build(),
		},
		recent.Value.Blockhash,
		solana.TransactionPayer(payer.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	if _, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer.PublicKey()) {
			return &payer
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}
