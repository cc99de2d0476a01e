// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// posctl drives the PoS kernel against a JSON fixture chain, the kind of
// host a real node's block-connection path would be: load a chain,
// connect each header through addToBlockIndex, then inspect the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/btcsuite/btcd/database"
	_ "github.com/btcsuite/btcd/database/ffldb"
	flags "github.com/jessevdk/go-flags"

	"github.com/Dracarys07/deeponion/blockchain"
)

var log btclog.Logger

// options are the flags shared by every subcommand.
type options struct {
	Fixture string `short:"f" long:"fixture" description:"path to a JSON fixture chain" required:"true"`
	Verbose bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

type checksumCmd struct {
	Height int32 `short:"H" long:"height" description:"height of the block to report" required:"true"`
}

type computeModifierCmd struct {
	Height int32 `short:"H" long:"height" description:"height of the block to report" required:"true"`
}

type checkKernelCmd struct {
	Height int32 `short:"H" long:"height" description:"height of the block whose checkpoint gate to re-verify" required:"true"`
}

type storeMetaCmd struct {
	Height int32  `short:"H" long:"height" description:"height of the block whose PoS metadata to persist" required:"true"`
	DBPath string `short:"d" long:"db" description:"path to the ffldb metadata database directory" required:"true"`
}

var opts options
var parser = flags.NewParser(&opts, flags.Default)

func (c *checksumCmd) Execute(args []string) error {
	setupLogging()
	chain, hashes, _, err := loadFixture(opts.Fixture)
	if err != nil {
		return err
	}
	node := chain.Index().LookupNode(&hashes[c.Height])
	if node == nil {
		return fmt.Errorf("no block at height %d", c.Height)
	}
	fmt.Printf("height=%d hash=%v checksum=%08x\n", node.Height(), node.Hash(), node.StakeModifierChecksum())
	return nil
}

func (c *computeModifierCmd) Execute(args []string) error {
	setupLogging()
	chain, hashes, _, err := loadFixture(opts.Fixture)
	if err != nil {
		return err
	}
	node := chain.Index().LookupNode(&hashes[c.Height])
	if node == nil {
		return fmt.Errorf("no block at height %d", c.Height)
	}
	fmt.Printf("height=%d hash=%v modifier=%016x generated=%v entropyBit=%d\n",
		node.Height(), node.Hash(), node.StakeModifier(), node.IsGeneratedStakeModifier(), node.StakeEntropyBit())
	return nil
}

func (c *checkKernelCmd) Execute(args []string) error {
	setupLogging()
	chain, hashes, posResults, err := loadFixture(opts.Fixture)
	if err != nil {
		return err
	}
	if int(c.Height) >= len(hashes) {
		return fmt.Errorf("no block at height %d", c.Height)
	}
	node := chain.Index().LookupNode(&hashes[c.Height])
	if node == nil {
		return fmt.Errorf("no block at height %d", c.Height)
	}
	ok := true
	for h, checkpoint := range chain.ChainParams().StakeModifierCheckpoints {
		if h != node.Height() {
			continue
		}
		if node.StakeModifierChecksum() != checkpoint {
			ok = false
		}
	}

	posErr := posResults[c.Height]
	fmt.Printf("height=%d hash=%v checkpointOK=%v proofOfStakeOK=%v\n", node.Height(), node.Hash(), ok, posErr == nil)
	if posErr != nil {
		fmt.Printf("  proof-of-stake check failed: %v\n", posErr)
	}
	return nil
}

// storeMetaCmd opens (creating if necessary) an ffldb-backed metadata
// database at DBPath, persists the connected block's PoS metadata into it
// via blockchain.StoreBlockMeta, then reads it back with
// blockchain.FetchBlockMeta to confirm the round trip — the real
// database.DB/database.Tx collaborators blockmeta.go's bucket functions
// are written against, in place of the in-memory doubles the other
// subcommands use for chain replay.
func (c *storeMetaCmd) Execute(args []string) error {
	setupLogging()
	chain, hashes, _, err := loadFixture(opts.Fixture)
	if err != nil {
		return err
	}
	if int(c.Height) >= len(hashes) {
		return fmt.Errorf("no block at height %d", c.Height)
	}
	node := chain.Index().LookupNode(&hashes[c.Height])
	if node == nil {
		return fmt.Errorf("no block at height %d", c.Height)
	}

	network := chain.ChainParams().Net.Net
	db, err := database.Open("ffldb", c.DBPath, network)
	if err != nil {
		if dbErr, ok := err.(database.Error); !ok || dbErr.ErrorCode != database.ErrDbDoesNotExist {
			return fmt.Errorf("opening metadata database at %s: %w", c.DBPath, err)
		}
		db, err = database.Create("ffldb", c.DBPath, network)
		if err != nil {
			return fmt.Errorf("creating metadata database at %s: %w", c.DBPath, err)
		}
	}
	defer db.Close()

	err = db.Update(func(dbTx database.Tx) error {
		if err := blockchain.CreateMetaBucket(dbTx); err != nil {
			if dbErr, ok := err.(database.Error); !ok || dbErr.ErrorCode != database.ErrBucketExists {
				return err
			}
		}
		return blockchain.StoreBlockMeta(dbTx, node.Hash(), node.Meta())
	})
	if err != nil {
		return fmt.Errorf("storing block metadata: %w", err)
	}

	var stored *blockMetaReport
	err = db.View(func(dbTx database.Tx) error {
		meta, err := blockchain.FetchBlockMeta(dbTx, *node.Hash())
		if err != nil {
			return err
		}
		stored = &blockMetaReport{modifier: meta.StakeModifier, checksum: meta.StakeModifierChecksum}
		return nil
	})
	if err != nil {
		return fmt.Errorf("fetching stored block metadata: %w", err)
	}

	fmt.Printf("height=%d hash=%v storedModifier=%016x storedChecksum=%08x\n",
		node.Height(), node.Hash(), stored.modifier, stored.checksum)
	return nil
}

// blockMetaReport carries the fields of a fetched wire.Meta this command
// prints, so its db.View closure doesn't need to capture *wire.Meta itself
// past the transaction's lifetime.
type blockMetaReport struct {
	modifier uint64
	checksum uint32
}

func main() {
	if _, err := parser.AddCommand("checksum",
		"Report a block's stake modifier checksum",
		"Reports the stake-modifier checksum computed when the block at the given height was connected.",
		&checksumCmd{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand("compute-modifier",
		"Report a block's stake modifier",
		"Reports the stake modifier, generation flag and entropy bit computed when the block at the given height was connected.",
		&computeModifierCmd{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand("check-kernel",
		"Re-verify a block's checkpoint gate",
		"Re-checks the connected block's stake-modifier checksum against the network's hard checkpoint table, if any.",
		&checkKernelCmd{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if _, err := parser.AddCommand("store-meta",
		"Persist a block's PoS metadata to an ffldb database",
		"Persists the connected block's stake-modifier metadata into an ffldb-backed metadata database, then reads it back to confirm the round trip.",
		&storeMetaCmd{}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err := parser.Parse(); err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
}

func init() {
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	backend := btclog.NewBackend(os.Stderr)
	log = backend.Logger(strings.ToUpper(appName))
}

// setupLogging wires the package logger into the kernel at debug level
// once the global --verbose flag has actually been parsed; called at the
// top of every subcommand's Execute rather than from init, since opts is
// still zero-valued when init runs.
func setupLogging() {
	if opts.Verbose {
		log.SetLevel(btclog.LevelDebug)
		blockchain.UseLogger(log)
	}
}
